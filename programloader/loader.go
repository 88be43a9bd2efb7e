// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.

package programloader

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jetsetilly/gopher6502/hardware/memory"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
)

// Sentinel errors. The errors returned by the Loader functions wrap these
// where appropriate.
var (
	HashMismatch      = errors.New("unexpected hash value")
	UnsupportedScheme = errors.New("unsupported URL scheme")
	BadFormat         = errors.New("bad program format")
	TooLarge          = errors.New("program does not fit in memory")
)

// List of program formats.
const (
	FormatBinary = "BIN"
	FormatHex    = "HEX"
	FormatPRG    = "PRG"
)

// Loader is used to specify the program to load.
type Loader struct {
	// filename or URL of program to load
	Filename string

	// one of the Format* values
	Format string

	// address at which the first byte of Data should be placed. for the PRG
	// format this is replaced by the address in the file header
	Origin uint16

	// expected hash of the loaded file. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded file
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload the
	// file
	Data []byte

	// a program can be empty so the length of Data is not enough to say
	// whether Load() has succeeded
	loaded bool
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The format argument will be used to set the Format field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field.
func NewLoader(filename string, format string) Loader {
	ld := Loader{
		Filename: filename,
		Format:   FormatBinary,
	}

	format = strings.TrimSpace(strings.ToUpper(format))
	if format != "AUTO" && format != "" {
		ld.Format = format
		return ld
	}

	switch strings.ToUpper(path.Ext(filename)) {
	case ".HEX", ".TXT":
		ld.Format = FormatHex
	case ".PRG":
		ld.Format = FormatPRG
	}

	return ld
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	return strings.TrimSuffix(path.Base(ld.Filename), path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return ld.loaded
}

// Load the program data. Filenames with a valid scheme will use that method
// to load the data. Currently supported schemes are HTTP(S) and local files.
func (ld *Loader) Load() error {
	if ld.HasLoaded() {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && u.Scheme != "" {
		scheme = strings.ToLower(u.Scheme)
	}

	var raw []byte

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return errors.Wrapf(err, "programloader: %s", ld.Filename)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errors.Errorf("programloader: %s: %s", ld.Filename, resp.Status)
		}

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrapf(err, "programloader: %s", ld.Filename)
		}

	case "file":
		filename := ld.Filename
		if u != nil && u.Scheme != "" {
			filename = u.Path
		}
		raw, err = os.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "programloader")
		}

	default:
		return errors.Wrapf(UnsupportedScheme, "programloader: %s", scheme)
	}

	// generate hash of the file as it was loaded
	hash := fmt.Sprintf("%x", sha1.Sum(raw))

	// check for hash consistency
	if ld.Hash != "" && !strings.EqualFold(ld.Hash, hash) {
		return errors.Wrapf(HashMismatch, "programloader: %s", ld.ShortName())
	}

	data, err := ld.decode(raw)
	if err != nil {
		return errors.Wrapf(err, "programloader: %s", ld.ShortName())
	}

	if int(ld.Origin)+len(data) > memory.MemorySize {
		return errors.Wrapf(TooLarge, "programloader: %d bytes at %#04x", len(data), ld.Origin)
	}

	ld.Hash = hash
	ld.Data = data
	ld.loaded = true

	logger.Logf(logger.Allow, "programloader", "loaded %s (%d bytes at %#04x)", ld.ShortName(), len(ld.Data), ld.Origin)

	return nil
}

// decode the raw file according to the format.
func (ld *Loader) decode(raw []byte) ([]byte, error) {
	switch ld.Format {
	case FormatBinary:
		return raw, nil

	case FormatPRG:
		if len(raw) < 2 {
			return nil, errors.Wrap(BadFormat, "PRG file has no header")
		}
		ld.Origin = uint16(raw[0]) | uint16(raw[1])<<8
		return raw[2:], nil

	case FormatHex:
		return decodeHex(raw)
	}

	return nil, errors.Wrapf(BadFormat, "unknown format (%s)", ld.Format)
}

// decodeHex parses text consisting of whitespace separated hex bytes. Text
// following a '#' or ';' on a line is ignored. Bytes may be prefixed with "0x"
// or "$".
func decodeHex(raw []byte) ([]byte, error) {
	var data []byte

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++

		s := scanner.Text()
		if i := strings.IndexAny(s, "#;"); i >= 0 {
			s = s[:i]
		}

		for _, f := range strings.Fields(s) {
			f = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(f), "0x"), "$")
			v, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return nil, errors.Wrapf(BadFormat, "line %d: %q is not a hex byte", line, f)
			}
			data = append(data, uint8(v))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "hex")
	}

	return data, nil
}

// Attach copies the loaded data into memory starting at Origin. Memory is
// written with the Poke() function so no CPU side effects are triggered.
func (ld Loader) Attach(mem cpubus.DebugBus) error {
	if !ld.HasLoaded() {
		return errors.Errorf("programloader: %s has not been loaded", ld.ShortName())
	}

	for i, b := range ld.Data {
		if err := mem.Poke(ld.Origin+uint16(i), b); err != nil {
			return errors.Wrapf(err, "programloader: attaching %s", ld.ShortName())
		}
	}

	return nil
}
