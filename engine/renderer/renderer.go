package renderer

// Renderer executes a scene against a pipeline. B and T are the backend's
// buffer and texture handle types, C its device context. Submission is
// infallible from the caller's point of view.
type Renderer[B, T, C any] interface {
	Submit(pipeline *Pipeline, scene *Scene[B, T], ctx C)
}
