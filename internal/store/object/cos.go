package object

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/tencentyun/cos-go-sdk-v5"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// COSStore is the alternate object store backend, selected via
// store.object_backend = "cos". It honours the same key layout as
// MinIOStore so callers never branch on backend choice.
type COSStore struct {
	client *cos.Client
}

func NewCOSStore(bucketURL, secretID, secretKey string) (*COSStore, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid cos bucket url: " + err.Error())
	}
	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  secretID,
			SecretKey: secretKey,
		},
	})
	return &COSStore{client: client}, nil
}

func (s *COSStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.Object.Put(ctx, key, bytes.NewReader(body), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentType: contentType},
	})
	if err != nil {
		return "", apperrors.NewStoreError("put object "+key, err)
	}
	return s.client.Object.GetObjectURL(key).String(), nil
}

func (s *COSStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.Object.Get(ctx, key, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("object " + key + " not found")
		}
		return nil, apperrors.NewStoreError("get object "+key, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewStoreError("read object "+key, err)
	}
	return data, nil
}

func (s *COSStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.Object.IsExist(ctx, key)
	if err != nil {
		return false, apperrors.NewStoreError("stat object "+key, err)
	}
	return ok, nil
}
