package tmdb

// Poster sizes accepted by the image CDN.
const (
	PosterSmall    = "w200"
	PosterMedium   = "w500"
	BackdropMedium = "w780"
	SizeOriginal   = "original"
)

// PosterURL returns the CDN URL for a poster path, or "" when the title has none.
func (c *Client) PosterURL(path, size string) string {
	if size == "" {
		size = PosterMedium
	}
	return c.imageURL(path, size)
}

func (c *Client) BackdropURL(path, size string) string {
	if size == "" {
		size = BackdropMedium
	}
	return c.imageURL(path, size)
}

func (c *Client) imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + size + path
}
