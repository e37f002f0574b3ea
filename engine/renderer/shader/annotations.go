// annotations.go defines the annotation types and parser for the WGSL pre-processor.
// Annotations are single-line WGSL comments prefixed with @beagle: that inject shared struct
// definitions and generate uniform binding declarations, so the Go-side layout of a GPU struct
// and its WGSL definition come from one place.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@beagle:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct at the annotation site.
	//
	// Syntax: //@beagle:include <struct_type>
	//
	// Example: //@beagle:include draw_constants
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration and records it
	// in the pre-processor's declarations list.
	//
	// Syntax: //@beagle:group <group> <binding> <address_space> <var_name> <struct_type>
	//
	// Example: //@beagle:group 0 0 uniform constants draw_constants
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// AnnotationArg is a registered argument value of an annotation.
type AnnotationArg string

const (
	// AnnotationArgDrawConstants names the per-draw constant block.
	AnnotationArgDrawConstants AnnotationArg = "draw_constants"

	// AnnotationArgUniform selects the uniform address space.
	AnnotationArgUniform AnnotationArg = "uniform"
)

var (
	validStructTypes   = []AnnotationArg{AnnotationArgDrawConstants}
	validAddressSpaces = []AnnotationArg{AnnotationArgUniform}
)

// Annotation is one parsed annotation line.
type Annotation struct {
	// Type is the annotation kind.
	Type AnnotationType

	// Args holds the struct type for include, and the address space, variable name and struct
	// type for group.
	Args []AnnotationArg

	// Line is the 1-based source line.
	Line int

	// Group and Binding are set for group annotations only.
	Group   *int
	Binding *int
}

// parseAnnotation attempts to parse a single line of WGSL source as an annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: group annotation requires group, binding, address space, variable name and struct type", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, args[1], err)
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
