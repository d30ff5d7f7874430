package pdf

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"github.com/examsheet/examsheet/internal/content"
)

// svgRasterScale oversamples rasterized SVGs for print resolution
const svgRasterScale = 2.0

// renderImage embeds an image element at its measured size. Failures are
// logged and leave the reserved space blank; the page layout is unaffected.
func (r *Renderer) renderImage(pdf *fpdf.Fpdf, img *content.Image, x, y float64) {
	reg, ok := r.ensureImage(pdf, img)
	if !ok {
		return
	}
	opts := fpdf.ImageOptions{ImageType: reg.imgType, ReadDpi: false}
	pdf.ImageOptions(reg.name, x, y, img.Width, img.Height, false, opts, 0, "")
}

// ensureImage registers the image with the PDF once and caches the handle
func (r *Renderer) ensureImage(pdf *fpdf.Fpdf, img *content.Image) (registeredImage, bool) {
	if reg, ok := r.registered[img.Src]; ok {
		return reg, ok
	}
	if r.loader == nil {
		return registeredImage{}, false
	}

	resource, err := r.loader.Load(img.Src)
	if err != nil {
		r.log.Warn("image could not be loaded for rendering",
			zap.String("src", img.Src), zap.Error(err))
		return registeredImage{}, false
	}

	data := resource.Data
	imgType := nativeImageType(resource.MimeType)

	if resource.IsSVG() {
		data, err = rasterizeSVG(data, img.Width, img.Height)
		if err != nil {
			r.log.Warn("svg could not be rasterized",
				zap.String("src", img.Src), zap.Error(err))
			return registeredImage{}, false
		}
		imgType = "PNG"
	} else if imgType == "" {
		// formats fpdf cannot embed directly are re-encoded as PNG
		data, err = reencodePNG(data)
		if err != nil {
			r.log.Warn("image could not be re-encoded",
				zap.String("src", img.Src), zap.Error(err))
			return registeredImage{}, false
		}
		imgType = "PNG"
	}

	reg := registeredImage{name: img.Src, imgType: imgType}
	opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
	pdf.RegisterImageOptionsReader(reg.name, opts, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		r.log.Warn("image could not be registered",
			zap.String("src", img.Src), zap.Error(err))
		return registeredImage{}, false
	}

	r.registered[img.Src] = reg
	return reg, true
}

// nativeImageType returns the fpdf image type for formats it embeds
// directly, or "" when re-encoding is required
func nativeImageType(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return "PNG"
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		return "JPG"
	case strings.Contains(mime, "gif"):
		return "GIF"
	default:
		return ""
	}
}

// reencodePNG decodes any registered raster format and encodes it as PNG
func reencodePNG(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterizeSVG renders an SVG to a PNG at the target display size
func rasterizeSVG(data []byte, width, height float64) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w := int(width * svgRasterScale)
	h := int(height * svgRasterScale)
	if w <= 0 || h <= 0 {
		w, h = 64, 64
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
