package catalog

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"vitrin/utils"

	"github.com/disintegration/imaging"
)

const productPicDir = "static/productpic"

// saveProductImage stores the uploaded image and a 300px-wide thumbnail,
// returning their serving paths.
func saveProductImage(productID string, file multipart.File) (string, string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	if err := utils.EnsureDir(productPicDir); err != nil {
		return "", "", err
	}

	originalPath := filepath.Join(productPicDir, productID+".jpg")
	if err := imaging.Save(img, originalPath); err != nil {
		return "", "", fmt.Errorf("save image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	thumbnailPath := filepath.Join(productPicDir, productID+"_thumb.jpg")
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", "", fmt.Errorf("save thumbnail: %w", err)
	}

	return "/" + originalPath, "/" + thumbnailPath, nil
}
