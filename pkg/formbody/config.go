package formbody

// Encoding is the declared submission encoding of a rendered form. It is
// derived from the active decoders so that client submissions match what the
// server will decode.
type Encoding string

const (
	// EncodingURLEncoded is the default application/x-www-form-urlencoded encoding.
	EncodingURLEncoded Encoding = "urlencoded"
	// EncodingFormData is the multipart/form-data encoding used for uploads.
	EncodingFormData Encoding = "form-data"
)

// ContentType returns the encType attribute value for the encoding.
func (e Encoding) ContentType() string {
	if e == EncodingFormData {
		return "multipart/form-data"
	}
	return "application/x-www-form-urlencoded"
}

// Config selects which body decoders a page activates. Decoders compose:
// several may run on the same request, each activating only for its own
// content type.
type Config struct {
	// Multipart handles multipart/form-data uploads, streaming file parts to
	// temporary files.
	Multipart *MultipartConfig

	// URLEncoded handles application/x-www-form-urlencoded form posts.
	URLEncoded bool

	// JSON handles application/json object bodies.
	JSON bool

	// Text captures text/plain bodies.
	Text bool

	// Raw captures any remaining body as bytes.
	Raw bool
}

// DefaultConfig enables urlencoded decoding only, matching the default form
// encoding of rendered pages.
func DefaultConfig() Config {
	return Config{URLEncoded: true}
}

// FormEncoding resolves the declared form encoding for the configuration.
// Multipart takes priority over urlencoded; json/text/raw serve non-form
// payload styles and never affect the declared encoding.
func (c Config) FormEncoding() Encoding {
	if c.Multipart != nil {
		return EncodingFormData
	}
	return EncodingURLEncoded
}
