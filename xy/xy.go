/*
 * xy.go, part of sslayout.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package xy

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v2 "github.com/rmera/sslayout/v2"
)

// DefaultPrec is the number of decimal places written for each coordinate.
const DefaultPrec = 4

// Data is the content of an XY file.
type Data struct {
	Coords *v2.Matrix
	Seq    string            //one letter per nucleotide
	Pairs  []int             //partner of each nucleotide, or -1
	Chains []int             //strand lengths
	Header map[string]string //every key in the header, including prec and chains
}

// zstd's Decoder has a Close method, but it doesn't return an error.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compressor returns a function that wraps a writer according to the extension of name.
func compressor(name string) func(io.Writer) (io.WriteCloser, error) {
	switch n := strings.ToLower(name); {
	case strings.HasSuffix(n, ".zst"):
		return func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		}
	case strings.HasSuffix(n, ".gz"):
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	}
	return func(a io.Writer) (io.WriteCloser, error) { return nopWriteCloser{a}, nil }
}

func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	switch n := strings.ToLower(name); {
	case strings.HasSuffix(n, ".zst"):
		return func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdReadCloser{r}, nil
		}
	case strings.HasSuffix(n, ".gz"):
		return func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	}
	return func(a io.Reader) (io.ReadCloser, error) { return io.NopCloser(a), nil }
}

// Write writes the layout coords, with the sequence seq and the partner of each
// nucleotide, to the file name. The file is compressed if name ends with .zst or .gz.
// The whole layout is written as a single strand. seq can be empty.
func Write(name string, coords *v2.Matrix, seq string, pairs []int) error {
	return WriteChains(name, coords, seq, pairs, nil, nil)
}

// WriteChains is like Write, but records the strand lengths and any additional
// header entries.
func WriteChains(name string, coords *v2.Matrix, seq string, pairs, chains []int, header map[string]string) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Create", "Write"}, true}
	}
	defer f.Close()
	h, err := compressor(name)(f)
	if err != nil {
		return Error{"can't start compression: " + err.Error(), name, []string{"Write"}, true}
	}
	b := bufio.NewWriter(h)
	if err := Encode(b, coords, seq, pairs, chains, header); err != nil {
		h.Close()
		return errDecorate(fileErr(err, name), "Write")
	}
	if err := b.Flush(); err != nil {
		h.Close()
		return Error{err.Error(), name, []string{"Flush", "Write"}, true}
	}
	if err := h.Close(); err != nil {
		return Error{err.Error(), name, []string{"Close", "Write"}, true}
	}
	return nil
}

// Encode writes a layout in the XY format to out. If chains is nil, the layout is
// written as a single strand. header can be nil.
func Encode(out io.Writer, coords *v2.Matrix, seq string, pairs, chains []int, header map[string]string) error {
	if coords == nil {
		return Error{"nil coordinates", "", []string{"Encode"}, true}
	}
	n := coords.NVecs()
	if len(pairs) != n {
		return Error{fmt.Sprintf("%d coordinates but %d pairs", n, len(pairs)), "", []string{"Encode"}, true}
	}
	bases := []rune(seq)
	if len(bases) != 0 && len(bases) != n {
		return Error{fmt.Sprintf("%d coordinates but %d nucleotides in the sequence", n, len(bases)), "", []string{"Encode"}, true}
	}
	if chains == nil {
		chains = []int{n}
	}
	if sum(chains) != n {
		return Error{fmt.Sprintf("chains add up to %d, but there are %d coordinates", sum(chains), n), "", []string{"Encode"}, true}
	}
	prec := DefaultPrec
	if p, ok := header["prec"]; ok {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			prec = v
		}
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		if k != "prec" && k != "chains" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	w := func(format string, a ...any) error {
		_, err := fmt.Fprintf(out, format, a...)
		return err
	}
	for _, k := range keys {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			return Error{fmt.Sprintf("invalid header entry %q", k), "", []string{"Encode"}, true}
		}
		if err := w("%s=%s\n", k, header[k]); err != nil {
			return Error{err.Error(), "", []string{"Encode"}, true}
		}
	}
	cs := make([]string, len(chains))
	for i, v := range chains {
		cs[i] = strconv.Itoa(v)
	}
	if err := w("prec=%d\nchains=%s\n** %d\n", prec, strings.Join(cs, ","), n); err != nil {
		return Error{err.Error(), "", []string{"Encode"}, true}
	}
	for i := 0; i < n; i++ {
		b := 'N'
		if len(bases) > 0 {
			b = bases[i]
		}
		x, y := coords.XY(i)
		if err := w("%c %.*f %.*f %d\n", b, prec, x, prec, y, pairs[i]); err != nil {
			return Error{err.Error(), "", []string{"Encode"}, true}
		}
	}
	return nil
}

// Read reads an XY file. Files with the extension .zst or .gz are decompressed.
func Read(name string) (*Data, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Open", "Read"}, true}
	}
	defer f.Close()
	r, err := decompressor(name)(bufio.NewReader(f))
	if err != nil {
		return nil, Error{"can't start decompression: " + err.Error(), name, []string{"Read"}, true}
	}
	defer r.Close()
	d, err := Decode(r)
	return d, errDecorate(fileErr(err, name), "Read")
}

// Decode reads a layout in the XY format from in.
func Decode(in io.Reader) (*Data, error) {
	h := bufio.NewReader(in)
	d := &Data{Header: make(map[string]string)}
	n := -1
	line := 0
	for n < 0 {
		str, err := h.ReadString('\n')
		line++
		if err != nil {
			return nil, Error{fmt.Sprintf("can't read header, line %d: %s", line, err.Error()), "", []string{"Decode"}, true}
		}
		str = strings.TrimSpace(str)
		if strings.HasPrefix(str, "**") {
			f := strings.Fields(str)
			if len(f) < 2 {
				return nil, Error{fmt.Sprintf("can't read the number of nucleotides from '%s'", str), "", []string{"Decode"}, true}
			}
			n, err = strconv.Atoi(f[1])
			if err != nil || n < 1 {
				return nil, Error{fmt.Sprintf("can't read the number of nucleotides from '%s'", str), "", []string{"Decode"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			return nil, Error{fmt.Sprintf("malformed header line %d: '%s'", line, str), "", []string{"Decode"}, true}
		}
		d.Header[k] = v
	}
	if c, ok := d.Header["chains"]; ok {
		for _, s := range strings.Split(c, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || v <= 0 {
				return nil, Error{fmt.Sprintf("malformed chain lengths '%s'", c), "", []string{"Decode"}, true}
			}
			d.Chains = append(d.Chains, v)
		}
		if sum(d.Chains) != n {
			return nil, Error{fmt.Sprintf("chains add up to %d, but the file has %d nucleotides", sum(d.Chains), n), "", []string{"Decode"}, true}
		}
	} else {
		d.Chains = []int{n}
	}
	d.Coords = v2.Zeros(n)
	d.Pairs = make([]int, n)
	seq := make([]rune, n)
	for i := 0; i < n; i++ {
		str, err := h.ReadString('\n')
		line++
		if err != nil && (err != io.EOF || strings.TrimSpace(str) == "") {
			return nil, Error{fmt.Sprintf("expected %d nucleotides, found %d", n, i), "", []string{"Decode"}, true}
		}
		f := strings.Fields(str)
		if len(f) != 4 {
			return nil, Error{fmt.Sprintf("line %d: expected 4 fields, got %d", line, len(f)), "", []string{"Decode"}, true}
		}
		b := []rune(f[0])
		if len(b) != 1 {
			return nil, Error{fmt.Sprintf("line %d: invalid nucleotide '%s'", line, f[0]), "", []string{"Decode"}, true}
		}
		seq[i] = b[0]
		x, errx := strconv.ParseFloat(f[1], 64)
		y, erry := strconv.ParseFloat(f[2], 64)
		p, errp := strconv.Atoi(f[3])
		if errx != nil || erry != nil || errp != nil {
			return nil, Error{fmt.Sprintf("line %d: can't parse '%s'", line, strings.TrimSpace(str)), "", []string{"Decode"}, true}
		}
		d.Coords.SetXY(i, x, y)
		d.Pairs[i] = p
	}
	for i, p := range d.Pairs {
		if p < -1 || p >= n || p == i || (p >= 0 && d.Pairs[p] != i) {
			return nil, Error{fmt.Sprintf("nucleotide %d has an invalid partner %d", i, p), "", []string{"Decode"}, true}
		}
	}
	d.Seq = string(seq)
	return d, nil
}

func sum(s []int) int {
	r := 0
	for _, v := range s {
		r += v
	}
	return r
}
