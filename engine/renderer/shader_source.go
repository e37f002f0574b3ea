package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/beagle-go/engine/renderer/shader"
)

// Bind group slot of the per-draw constants in every pipeline.
const (
	drawConstantsGroup   = 0
	drawConstantsBinding = 0
)

// prepareShader expands the annotations of a pipeline's WGSL source and checks that it declares
// the draw constants where the pipeline layout binds them.
//
// Parameters:
//   - label: the pipeline label, used in errors
//   - source: the annotated WGSL source
//
// Returns:
//   - string: the compilable WGSL source
//   - error: error if an annotation is malformed or the constants binding is missing or misplaced
func prepareShader(label, source string) (string, error) {
	p := shader.NewPreProcessor()
	code, err := p.Process(source)
	if err != nil {
		return "", fmt.Errorf("failed to pre-process %s shader: %w", label, err)
	}

	d, ok := shader.FindBinding(p.Declarations(), shader.AnnotationArgDrawConstants)
	if !ok {
		return "", fmt.Errorf("%s shader does not declare the draw constants binding", label)
	}
	if *d.Group != drawConstantsGroup || *d.Binding != drawConstantsBinding {
		return "", fmt.Errorf("%s shader binds draw constants at group %d binding %d, want %d and %d",
			label, *d.Group, *d.Binding, drawConstantsGroup, drawConstantsBinding)
	}
	return code, nil
}
