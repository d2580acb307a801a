/*
 * compressed.go, part of trajio.
 *
 * Copyright 2024 The trajio Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dcd

import (
	"bufio"
	"bytes"
	"compress/lzw"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/trajio"
)

const (
	lzwOrder        = lzw.MSB
	lzwLitwidth int = 8
)

// Codec returns the compression codec implied by the extension of fname: "zst", "gz",
// "lzw", or "" for a plain DCD file.
func Codec(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".zst", ".zstd":
		return "zst"
	case ".gz":
		return "gz"
	case ".lzw":
		return "lzw"
	}
	return ""
}

//zstd.Decoder's Close doesn't return an error, so it isn't an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func newDecompressor(codec string, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case "zst":
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	case "gz":
		return gzip.NewReader(r)
	case "lzw":
		return lzw.NewReader(r, lzwOrder, lzwLitwidth), nil
	}
	return io.NopCloser(r), nil
}

//prepSource opens fname and returns something a Reader can work with. Plain files are
//used directly. Compressed files (.zst, .gz, .lzw) are decompressed into memory, since
//decoding needs random access; in that case the returned closer is nil, as the file is
//already closed.
func prepSource(fname string) (Source, io.Closer, error) {
	fi, err := os.Stat(fname)
	if err != nil {
		return nil, nil, newError(err, fname, "prepSource", "can't stat file")
	}
	if fi.Size() == 0 {
		return nil, nil, newError(trajio.ErrEmptyFile, fname, "prepSource", "zero size file")
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, newError(err, fname, "prepSource", "can't open file")
	}
	codec := Codec(fname)
	if codec == "" {
		if ext := strings.ToLower(filepath.Ext(fname)); ext != ".dcd" {
			//if it's not a plain DCD, you'll get an error later.
			log.Printf("Extension %q not recognized. %s will be assumed to be a plain DCD file", ext, fname)
		}
		return f, f, nil
	}
	defer f.Close()
	d, err := newDecompressor(codec, bufio.NewReader(f))
	if err != nil {
		return nil, nil, newError(err, fname, "prepSource", "can't start %s decompression", codec)
	}
	defer d.Close()
	data, err := io.ReadAll(d)
	if err != nil {
		return nil, nil, newError(err, fname, "prepSource", "decompressing %s data", codec)
	}
	if len(data) == 0 {
		return nil, nil, newError(trajio.ErrEmptyFile, fname, "prepSource", "no data after decompression")
	}
	return bytes.NewReader(data), nil, nil
}

func newCompressor(codec string, w io.Writer, level int) (io.WriteCloser, error) {
	switch codec {
	case "zst":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	case "gz":
		return gzip.NewWriterLevel(w, level)
	case "lzw":
		return lzw.NewWriter(w, lzwOrder, lzwLitwidth), nil
	}
	return nil, newError(trajio.ErrInvalidArgument, "", "newCompressor", "unknown compression codec %q", codec)
}

// Compress writes a compressed copy of the DCD file src to dst. The codec is given by the
// extension of dst (.zst, .gz or .lzw). level is passed to the codec: zstd levels go from 1
// to 22, gzip levels from -2 to 9, lzw ignores it.
// DCD files can't be written compressed, as the frame count has to be updated in place,
// so trajectories are written plain and compressed afterwards.
func Compress(src, dst string, level int) error {
	codec := Codec(dst)
	if codec == "" {
		return newError(trajio.ErrInvalidArgument, dst, "Compress", "no compression extension in target name")
	}
	in, err := os.Open(src)
	if err != nil {
		return newError(err, src, "Compress", "can't open source")
	}
	defer in.Close()
	//make sure we are compressing a trajectory
	if _, err := ReadHeader(in); err != nil {
		return setFileName(errDecorate(err, "Compress"), src)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return newError(err, src, "Compress", "seeking start of file")
	}
	out, err := os.Create(dst)
	if err != nil {
		return newError(err, dst, "Compress", "can't create target")
	}
	bw := bufio.NewWriter(out)
	cw, err := newCompressor(codec, bw, level)
	if err != nil {
		out.Close()
		return setFileName(errDecorate(err, "Compress"), dst)
	}
	if _, err := io.Copy(cw, in); err != nil {
		cw.Close()
		out.Close()
		return newError(err, dst, "Compress", "compressing %s", src)
	}
	if err := cw.Close(); err != nil {
		out.Close()
		return newError(err, dst, "Compress", "finishing %s stream", codec)
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return newError(err, dst, "Compress", "flushing")
	}
	if err := out.Close(); err != nil {
		return newError(err, dst, "Compress", "closing target")
	}
	return nil
}
