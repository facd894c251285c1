package minio

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/objfs/fs/minio/internal/errs"
)

// Attributes are stored as S3 user metadata. S3 canonicalizes metadata
// header names, so attribute names are case-insensitive and always reported
// in lower case. Values are stored with fmt's %v formatting and read back as
// strings.

// Attributes returns the user metadata of the named object.
func (m *MinioFS) Attributes(name string) (map[string]interface{}, error) {
	info, err := m.client.StatObject(context.Background(), m.bucket, m.joinPath(name), minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("attributes", name, errs.Translate(err))
	}

	attrs := make(map[string]interface{}, len(info.UserMetadata))
	for k, v := range info.UserMetadata {
		attrs[strings.ToLower(k)] = v
	}
	return attrs, nil
}

// SetAttribute sets one user metadata entry on the named object.
func (m *MinioFS) SetAttribute(name, key string, value interface{}) error {
	return m.updateMetadata("setattribute", name, func(meta map[string]string) {
		meta[strings.ToLower(key)] = fmt.Sprintf("%v", value)
	})
}

// RemoveAttribute removes one user metadata entry from the named object.
func (m *MinioFS) RemoveAttribute(name, key string) error {
	return m.updateMetadata("removeattribute", name, func(meta map[string]string) {
		delete(meta, strings.ToLower(key))
	})
}

// updateMetadata rewrites the object's user metadata with a server-side
// self-copy. The object's bytes and content type are preserved.
func (m *MinioFS) updateMetadata(op, name string, mutate func(map[string]string)) error {
	ctx := context.Background()
	key := m.joinPath(name)

	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return errs.PathError(op, name, errs.Translate(err))
	}

	meta := make(map[string]string, len(info.UserMetadata)+1)
	for k, v := range info.UserMetadata {
		meta[strings.ToLower(k)] = v
	}
	mutate(meta)

	_, err = m.client.CopyObject(ctx,
		minio.CopyDestOptions{
			Bucket:          m.bucket,
			Object:          key,
			UserMetadata:    meta,
			ReplaceMetadata: true,
			ContentType:     info.ContentType,
		},
		minio.CopySrcOptions{
			Bucket: m.bucket,
			Object: key,
		},
	)
	if err != nil {
		return errs.PathError(op, name, errs.Translate(err))
	}
	return nil
}
