package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// Put uploads data under the public id derived from objectPath and returns
// the secure URL.
func (s *CloudinaryService) Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	uploadResult, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     cloudinaryPublicID(objectPath),
		ResourceType: "auto", // Automatically detect image, video, or raw
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if uploadResult.Error.Message != "" {
		return "", fmt.Errorf("failed to upload to Cloudinary: %s", uploadResult.Error.Message)
	}

	return uploadResult.SecureURL, nil
}

// Delete destroys the asset behind a delivery URL returned by Put.
func (s *CloudinaryService) Delete(ctx context.Context, deliveryURL string) error {
	publicID, resourceType, err := cloudinaryAsset(deliveryURL)
	if err != nil {
		return err
	}

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete from Cloudinary: %s", res.Error.Message)
	}
	return nil
}

var (
	versionSegment  = regexp.MustCompile(`^v\d+$`)
	unsafeIDSegment = regexp.MustCompile(`[^A-Za-z0-9_./-]+`)
)

// cloudinaryPublicID drops the extension (Cloudinary keeps the format
// separately) and replaces runs of characters that are not URL-safe with "_",
// so the id read back from the delivery URL is the one that was stored.
func cloudinaryPublicID(objectPath string) string {
	id := strings.TrimSuffix(objectPath, path.Ext(objectPath))
	return unsafeIDSegment.ReplaceAllString(id, "_")
}

// cloudinaryAsset extracts public id and resource type from a delivery URL
// such as https://res.cloudinary.com/demo/image/upload/v1712/laporan/u/1-a.png.
func cloudinaryAsset(deliveryURL string) (publicID, resourceType string, err error) {
	u, err := url.Parse(deliveryURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid Cloudinary URL: %w", err)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, seg := range segs {
		if seg == "upload" {
			idx = i
			break
		}
	}
	if idx < 1 || idx == len(segs)-1 {
		return "", "", fmt.Errorf("not a Cloudinary delivery URL: %s", deliveryURL)
	}

	resourceType = segs[idx-1]
	rest := segs[idx+1:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	publicID = strings.Join(rest, "/")
	// raw assets keep their extension in the public id
	if resourceType != "raw" {
		publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	}
	return publicID, resourceType, nil
}
