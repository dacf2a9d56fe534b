package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ImageStorage is the external media collaborator: it accepts a base64
// payload under a logical key and hands back where the image ended up.
type ImageStorage interface {
	Upload(ctx context.Context, data, publicID string, overwrite bool) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) (bool, error)
}

type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	client, err := cloudinary.NewFromParams(
		viper.GetString("cloudinary.cloud_name"),
		viper.GetString("cloudinary.api_key"),
		viper.GetString("cloudinary.api_secret"),
	)
	if err != nil {
		return nil, err
	}

	return &CloudinaryStorage{client: client}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, data, publicID string, overwrite bool) (*UploadResult, error) {
	resp, err := s.client.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID:     publicID,
		Overwrite:    api.Bool(overwrite),
		ResourceType: "image",
	})
	if err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("An error occurred when uploading image...")
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
	}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) (bool, error) {
	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Error().Err(err).Str("public_id", publicID).Msg("An error occurred when deleting image...")
		return false, err
	}

	return resp.Result == "ok", nil
}
