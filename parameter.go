package vram

// ParameterKind identifies a sampling parameter. A Descriptor holds at
// most one parameter per kind; setting a kind again replaces it.
type ParameterKind uint8

const (
	// ParamMinFilter selects the minification filter.
	ParamMinFilter ParameterKind = iota + 1

	// ParamMagFilter selects the magnification filter.
	ParamMagFilter

	// ParamWrapU selects wrapping along the horizontal axis.
	ParamWrapU

	// ParamWrapV selects wrapping along the vertical axis.
	ParamWrapV

	// ParamWrapW selects wrapping along the depth axis.
	ParamWrapW

	// ParamLODMin clamps the minimum mip level sampled.
	ParamLODMin

	// ParamLODMax clamps the maximum mip level sampled.
	ParamLODMax

	// ParamAnisotropy sets the maximum anisotropic sample count.
	ParamAnisotropy
)

// Filter values for ParamMinFilter and ParamMagFilter.
const (
	FilterNearest int32 = iota
	FilterLinear
)

// Wrap values for ParamWrapU, ParamWrapV and ParamWrapW.
const (
	WrapRepeat int32 = iota
	WrapClampToEdge
	WrapMirrorRepeat
)

// Parameter is one sampling parameter, applied by the backend when the
// resource is materialized and re-applied after rematerialization.
type Parameter struct {
	Kind  ParameterKind
	Value int32
}
