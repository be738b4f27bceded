package holidays

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/daypicker/pkg/dateutil"
)

// FileSource implements Source using a local text file
type FileSource struct {
	filePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	data map[string]*Day // key: "YYYY-MM-DD"
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]*Day),
	}
}

// Load loads calendar data from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	data, err := fs.parse(file)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	fs.data = data
	fs.mu.Unlock()

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("days", len(data)))

	return nil
}

// parse reads "YYYY-MM-DD type [note]" lines, skipping blanks and # comments
func (fs *FileSource) parse(r io.Reader) (map[string]*Day, error) {
	data := make(map[string]*Day)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			fs.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			fs.logger.Warn("Failed to parse date", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		dayType, err := ParseDayType(strings.ToLower(parts[1]))
		if err != nil {
			fs.logger.Warn("Unknown day type", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		day := &Day{
			Date: dateutil.Normalize(date),
			Type: dayType,
			Note: strings.Join(parts[2:], " "),
		}
		data[dayKey(day.Date)] = day
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}
	return data, nil
}

// Lookup returns the file entry for date
func (fs *FileSource) Lookup(date time.Time) (*Day, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	day, ok := fs.data[dayKey(date)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dayKey(date))
	}
	return day, nil
}

// Len returns the number of loaded entries
func (fs *FileSource) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.data)
}
