package topics

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render takes raw content and the file extension of the topic
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
