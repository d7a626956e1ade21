package media

import (
	"fmt"
	"strings"

	"bookit/internal/domain/experiences"

	"github.com/cloudinary/cloudinary-go/v2"
)

// CardTransformation crops catalog images to the card aspect ratio.
const CardTransformation = "c_fill,g_auto,h_400,w_600,q_auto,f_auto"

// Images turns stored image references into delivery URLs. Experiences keep
// either a full URL or a Cloudinary public id in their Image field.
type Images struct {
	cld *cloudinary.Cloudinary
}

// NewImages returns a resolver. A nil client leaves public ids untouched.
func NewImages(cld *cloudinary.Cloudinary) *Images {
	return &Images{cld: cld}
}

func (i *Images) URL(image string) (string, error) {
	if image == "" || i == nil || i.cld == nil || isAbsolute(image) {
		return image, nil
	}

	asset, err := i.cld.Image(image)
	if err != nil {
		return "", fmt.Errorf("cloudinary image %q: %w", image, err)
	}
	asset.Transformation = CardTransformation

	u, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("cloudinary url %q: %w", image, err)
	}
	return u, nil
}

// Resolve rewrites the Image field of every experience in place. An image
// that cannot be resolved is left as stored.
func (i *Images) Resolve(list ...*experiences.Experience) {
	for _, e := range list {
		if u, err := i.URL(e.Image); err == nil {
			e.Image = u
		}
	}
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
