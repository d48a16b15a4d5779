// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codecutil wraps readers and writers in zstd framing.
package codecutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewZstdReader returns a reader that decompresses r. Closing it releases the
// decoder and closes r if r is an io.Closer.
func NewZstdReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &zstdReader{decoder: decoder, src: r}, nil
}

type zstdReader struct {
	decoder *zstd.Decoder
	src     io.Reader
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.decoder.Read(p)
}

func (z *zstdReader) Close() error {
	z.decoder.Close()
	if c, ok := z.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewZstdWriter returns a writer that compresses into w. Closing it flushes
// the final frame and closes w if w is an io.Closer.
func NewZstdWriter(w io.Writer) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &zstdWriter{encoder: encoder, dst: w}, nil
}

type zstdWriter struct {
	encoder *zstd.Encoder
	dst     io.Writer
}

func (z *zstdWriter) Write(p []byte) (int, error) {
	return z.encoder.Write(p)
}

func (z *zstdWriter) Close() error {
	err := z.encoder.Close()
	if c, ok := z.dst.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
