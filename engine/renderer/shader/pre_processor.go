package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// registryEntry pairs an embedded WGSL struct source with its WGSL type name.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor expands @beagle: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces include annotations with the registered struct source and group
	// annotations with generated binding declarations. Each struct is injected at most once.
	//
	// Parameters:
	//   - source: the annotated WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations of the most recent Process call in source order.
	//
	// Returns:
	//   - []Annotation: the binding declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgDrawConstants: {Source: model.DrawConstantsSource, Type: "DrawConstants"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			AnnotationArgUniform: "var<uniform>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			included[a.Args[0]] = true
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

// FindBinding returns the declaration of the given struct type, if one was made.
//
// Parameters:
//   - declarations: the declarations from a Process call
//   - structType: the struct type to look for
//
// Returns:
//   - Annotation: the matching declaration
//   - bool: false if no declaration uses structType
func FindBinding(declarations []Annotation, structType AnnotationArg) (Annotation, bool) {
	for _, d := range declarations {
		if d.Type == AnnotationTypeBindingGroup && d.Args[2] == structType {
			return d, true
		}
	}
	return Annotation{}, false
}
