package playlist

//go:generate $MOCKGEN -source=table.go -destination=mocks/table_mock.go

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/oshokin/spotisaver/internal/constants"
	"github.com/oshokin/spotisaver/internal/logger"
)

// featureValue fills every audio-feature column.
const featureValue = "0"

// utf8BOM prefixes the table so spreadsheet tools detect UTF-8.
//
//nolint:gochecknoglobals // Read-only byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TableExporter writes and reads track tables.
type TableExporter interface {
	// Write stores records at targetPath and returns the final path.
	// Nothing is left at targetPath when writing fails.
	Write(ctx context.Context, records []*TrackRecord, targetPath string) (string, error)
	// Read loads the records of a table file.
	Read(ctx context.Context, path string) ([]*TrackRecord, error)
}

// TableExporterImpl implements TableExporter with CSV files.
type TableExporterImpl struct{}

// NewTableExporter creates a CSV table exporter.
func NewTableExporter() TableExporter {
	return &TableExporterImpl{}
}

// Write writes the table into a temporary file next to targetPath and renames it into place.
func (e *TableExporterImpl) Write(ctx context.Context, records []*TrackRecord, targetPath string) (string, error) {
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempPath := filepath.Join(dir, "."+uuid.NewString()+constants.ExtensionCSV+constants.ExtensionPart)

	size, err := writeTableFile(tempPath, records)
	if err != nil {
		removeQuietly(ctx, tempPath)

		return "", err
	}

	if err = os.Rename(tempPath, targetPath); err != nil {
		removeQuietly(ctx, tempPath)

		return "", fmt.Errorf("failed to move table into place: %w", err)
	}

	//nolint:gosec // Size of a file we just wrote is never negative.
	logger.Infof(ctx, "Wrote %d rows (%s) to %s", len(records), humanize.Bytes(uint64(size)), targetPath)

	return targetPath, nil
}

func writeTableFile(path string, records []*TrackRecord) (int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create table file: %w", err)
	}

	buffered := bufio.NewWriter(file)

	writeErr := writeTable(buffered, records)
	if writeErr == nil {
		writeErr = buffered.Flush()
	}

	closeErr := file.Close()

	if err = errors.Join(writeErr, closeErr); err != nil {
		return 0, fmt.Errorf("failed to write table file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func writeTable(w io.Writer, records []*TrackRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(Columns()); err != nil {
		return err
	}

	for _, record := range records {
		if err := writer.Write(recordToRow(record)); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func recordToRow(record *TrackRecord) []string {
	popularity := ""
	if record.Popularity != nil {
		popularity = strconv.Itoa(*record.Popularity)
	}

	duration := ""
	if !record.IsEmpty() {
		duration = strconv.Itoa(record.DurationMs)
	}

	row := []string{
		record.URI,
		record.Name,
		record.AlbumName,
		record.ArtistNames(),
		record.ReleaseDate,
		duration,
		popularity,
		formatExplicit(record),
		record.AddedBy,
		record.AddedAt,
		record.GenreNames(),
		record.Label,
	}

	for range FeatureColumns {
		row = append(row, featureValue)
	}

	return row
}

func formatExplicit(record *TrackRecord) string {
	if record.IsEmpty() {
		return ""
	}

	return strconv.FormatBool(record.Explicit)
}

// Read parses a table file. Columns are located by header name, so tables edited by
// hand keep working as long as the header row survives.
func (e *TableExporterImpl) Read(ctx context.Context, path string) ([]*TrackRecord, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Path comes from the user on purpose.
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrInvalidTable, path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	if _, ok := header[ColumnTrackName]; !ok {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrInvalidTable, path, ColumnTrackName)
	}

	records := make([]*TrackRecord, 0, len(rows)-1)

	for i, row := range rows[1:] {
		record, err := rowToRecord(header, row)
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrInvalidTable, path, i+2, err)
		}

		records = append(records, record)
	}

	logger.Debugf(ctx, "Read %d rows from %s", len(records), path)

	return records, nil
}

// rowToRecord keeps text cells byte for byte; only numeric and boolean cells are trimmed.
func rowToRecord(header map[string]int, row []string) (*TrackRecord, error) {
	field := func(column string) string {
		index, ok := header[column]
		if !ok || index >= len(row) {
			return ""
		}

		return row[index]
	}

	value := func(column string) string {
		return strings.TrimSpace(field(column))
	}

	record := &TrackRecord{
		URI:         field(ColumnTrackURI),
		Name:        field(ColumnTrackName),
		AlbumName:   field(ColumnAlbumName),
		Artists:     splitList(field(ColumnArtistNames)),
		ReleaseDate: field(ColumnReleaseDate),
		AddedBy:     field(ColumnAddedBy),
		AddedAt:     field(ColumnAddedAt),
		Genres:      splitList(field(ColumnGenres)),
		Label:       field(ColumnRecordLabel),
	}

	duration, err := parseOptionalInt(value(ColumnDurationMs))
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", ColumnDurationMs, err)
	}

	if duration != nil {
		record.DurationMs = *duration
	}

	if record.Popularity, err = parseOptionalInt(value(ColumnPopularity)); err != nil {
		return nil, fmt.Errorf("column %q: %w", ColumnPopularity, err)
	}

	if explicit := value(ColumnExplicit); explicit != "" {
		if record.Explicit, err = strconv.ParseBool(explicit); err != nil {
			return nil, fmt.Errorf("column %q: %w", ColumnExplicit, err)
		}
	}

	return record, nil
}

// parseOptionalInt accepts integers and whole floats such as "42.0",
// which spreadsheet tools produce for columns with blanks.
func parseOptionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // Absent value is not an error.
	}

	if parsed, err := strconv.Atoi(value); err == nil {
		return &parsed, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}

	result := int(parsed)

	return &result, nil
}

func removeQuietly(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf(ctx, "Failed to remove temporary file %s: %v", path, err)
	}
}
