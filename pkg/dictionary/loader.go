/*
Package dictionary fills a vocabulary from word lists on disk or from the
seed list compiled into the binary.

Three formats are read:

	.txt      one word per line, blank lines and '#' comments skipped
	.bin      int32 LE count, then per entry a uint16 LE length, the word bytes and a uint16 LE rank
	.msgpack  a msgpack array of strings

Ranks in binary chunks are read and discarded since suggestions are ordered
lexicographically.
*/
package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned for files whose format cannot be determined.
var ErrUnknownFormat = errors.New("unknown dictionary format")

//go:embed data/seed.txt
var seedWords []byte

// Inserter receives loaded words.
type Inserter interface {
	Insert(word string)
}

// Load reads the vocabulary file at path into dst and returns the number of words read.
func Load(path string, dst Inserter) (int, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return 0, err
	}
	if err := ValidateFileFormat(path, format); err != nil {
		return 0, err
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	n, err := LoadReader(bufio.NewReader(file), format, dst)
	if err != nil {
		return n, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s (%s)", n, path, format)
	return n, nil
}

// LoadReader reads words in the given format from r into dst.
func LoadReader(r io.Reader, format FileFormat, dst Inserter) (int, error) {
	switch format {
	case FormatText:
		return readText(r, dst)
	case FormatChunk:
		return readChunk(r, dst)
	case FormatMsgpack:
		return readMsgpack(r, dst)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// LoadDefault loads the embedded seed vocabulary into dst.
func LoadDefault(dst Inserter) (int, error) {
	n, err := readText(bytes.NewReader(seedWords), dst)
	if err != nil {
		return n, fmt.Errorf("failed to load seed vocabulary: %w", err)
	}
	log.Debugf("Loaded %d seed words", n)
	return n, nil
}

func readText(r io.Reader, dst Inserter) (int, error) {
	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		dst.Insert(word)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read word list: %w", err)
	}
	return count, nil
}

func readChunk(r io.Reader, dst Inserter) (int, error) {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return 0, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxChunkWords {
		return 0, fmt.Errorf("invalid chunk word count: %d", totalEntries)
	}

	count := 0
	for count < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ended after %d of %d words", count, totalEntries)
				break
			}
			return count, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return count, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return count, fmt.Errorf("failed to read rank: %w", err)
		}

		dst.Insert(string(wordBytes))
		count++
	}
	return count, nil
}

func readMsgpack(r io.Reader, dst Inserter) (int, error) {
	var words []string
	if err := msgpack.NewDecoder(r).Decode(&words); err != nil {
		return 0, fmt.Errorf("failed to decode msgpack word list: %w", err)
	}
	for _, w := range words {
		dst.Insert(w)
	}
	return len(words), nil
}
