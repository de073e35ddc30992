package renderer

/**
 * @brief Represents a single vertex: position, normal and texture
 * coordinate. Laid out tightly for upload to vertex buffers.
 */
type VertexPosNormal struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexStride is the size of VertexPosNormal in bytes.
const VertexStride = 8 * 4
