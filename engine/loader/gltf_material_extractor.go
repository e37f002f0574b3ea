package loader

import (
	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	file *File
}

// gltfMaterialExtractor converts document materials into the Phong parameters used for shading.
type gltfMaterialExtractor interface {
	// ExtractMaterial resolves a single material by index. Index -1 yields the zero material.
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document, or -1
	//
	// Returns:
	//   - model.Material: the resolved material
	//   - error: a KindIndexOutOfRange StructuralError if the index is invalid
	ExtractMaterial(materialIndex int) (model.Material, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
//
// Parameters:
//   - f: the parsed document
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(f *File) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{file: f}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (model.Material, error) {
	if materialIndex == absent {
		return model.Material{}, nil
	}
	if materialIndex < 0 || materialIndex >= len(e.file.Materials) {
		return model.Material{}, newStructuralError(KindIndexOutOfRange, "material", materialIndex,
			"outside [0, %d)", len(e.file.Materials))
	}

	extras := e.file.Materials[materialIndex].Extras
	return model.Material{
		Diffuse:   vec3(extras.Diffuse),
		Ambient:   vec3(extras.Ambient),
		Specular:  vec3(extras.Specular),
		Shininess: extras.ShininessFactor,
	}, nil
}

// vec3 converts a document triple into a Vector3.
func vec3(v [3]float32) common.Vector3 {
	return common.Vec3(v[0], v[1], v[2])
}
