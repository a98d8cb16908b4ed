package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
)

const maxUploadBytes = 16 << 20

// villageRow is one parsed spreadsheet row: a village plus its amenity
// profile.
type villageRow struct {
	Village   models.Village
	Amenities models.Amenities
}

// UploadVillages ingests a .csv or .xlsx of village rows. Rows upsert by
// (name, district, state); state and district fall back to the uploader's
// scope when columns are absent.
func (h *Handler) UploadVillages(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.sendErrorResponse(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.sendErrorResponse(w, "Malformed multipart request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.sendErrorResponse(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var rows []villageRow
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		rows, err = parseVillageCSV(file, claims.State, claims.District)
	case ".xlsx", ".xls":
		rows, err = parseVillageWorkbook(file, claims.State, claims.District)
	default:
		h.sendErrorResponse(w, "Only .csv and .xlsx files are supported", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	created, updated, err := h.ingestVillageRows(r.Context(), h.store, rows)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.caches.Stats.Flush()

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Village data uploaded successfully",
		"created":    created,
		"updated":    updated,
		"total_rows": len(rows),
	})
}

// villageUpserter is the slice of the store the ingest loop needs.
type villageUpserter interface {
	UpsertVillageRow(ctx context.Context, v models.Village, a models.Amenities) (string, bool, error)
}

// ingestVillageRows persists each row and drops any cached gap report for
// the resolved village, so the next gap read recomputes from the uploaded
// amenities.
func (h *Handler) ingestVillageRows(ctx context.Context, up villageUpserter, rows []villageRow) (created, updated int, err error) {
	for _, row := range rows {
		villageID, wasCreated, err := up.UpsertVillageRow(ctx, row.Village, row.Amenities)
		if err != nil {
			return created, updated, err
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
		h.caches.Gaps.Delete(villageID)
	}
	return created, updated, nil
}

func parseVillageCSV(f io.Reader, defaultState, defaultDistrict string) ([]villageRow, error) {
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("malformed CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "empty file"}
	}
	return rowsFromRecords(records, defaultState, defaultDistrict)
}

func parseVillageWorkbook(f io.Reader, defaultState, defaultDistrict string) ([]villageRow, error) {
	book, err := excelize.OpenReader(f)
	if err != nil {
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("malformed workbook: %v", err)}
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "workbook has no sheets"}
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("reading sheet: %v", err)}
	}
	if len(records) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "empty file"}
	}
	return rowsFromRecords(records, defaultState, defaultDistrict)
}

// rowsFromRecords interprets the first record as a header. Columns name and
// population are required; everything else is optional.
func rowsFromRecords(records [][]string, defaultState, defaultDistrict string) ([]villageRow, error) {
	index := map[string]int{}
	for i, col := range records[0] {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"name", "population"} {
		if _, ok := index[required]; !ok {
			return nil, &models.ValidationError{Field: required, Reason: "missing required column"}
		}
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []villageRow
	for _, record := range records[1:] {
		name := cell(record, "name")
		if name == "" {
			continue
		}

		population, err := strconv.Atoi(cell(record, "population"))
		if err != nil || population < 0 {
			return nil, &models.ValidationError{Field: "population", Reason: fmt.Sprintf("bad value for village %q", name)}
		}

		state := cell(record, "state")
		if state == "" {
			state = defaultState
		}
		district := cell(record, "district")
		if district == "" {
			district = defaultDistrict
		}

		rows = append(rows, villageRow{
			Village: models.Village{
				Name:       name,
				District:   district,
				State:      state,
				Population: population,
				SCRatio:    parseFloatCell(cell(record, "sc_ratio")),
			},
			Amenities: models.Amenities{
				Water:         int(parseFloatCell(cell(record, "water"))),
				Electricity:   parseFloatCell(cell(record, "electricity")),
				Schools:       int(parseFloatCell(cell(record, "schools"))),
				HealthCenters: int(parseFloatCell(cell(record, "health_centers"))),
				Toilets:       parseFloatCell(cell(record, "toilets")),
				Internet:      parseFloatCell(cell(record, "internet")),
			},
		})
	}
	return rows, nil
}

func parseFloatCell(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
