package component

// Container draws nothing but its background. Layouts use it for colored
// panels and as a clip box for animation.
type Container struct {
	Base
}

func NewContainer(host Host) *Container {
	return &Container{Base: NewBase(host)}
}
