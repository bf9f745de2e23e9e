package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	propertyDTO "estatehub_backend/internals/features/properties/properties/dto"
	helper "estatehub_backend/internals/helpers"
	"estatehub_backend/internals/helpers/dbtime"
)

// MaxImportRows caps one upload.
const MaxImportRows = 1000

// Columns in the order the sample file lists them. Only title, propertyType, listingType,
// address, city, state and a price column are required.
var Columns = []string{
	"title", "description", "propertyType", "listingType", "price", "rent", "salePrice", "deposit",
	"address", "locality", "city", "state", "pincode", "bedrooms", "bathrooms", "area", "areaUnit",
	"furnishing", "amenities", "availableFrom", "status", "ownerEmail",
}

var sampleRows = [][]string{
	{"2BHK near metro", "Bright flat with balcony", "apartment", "rent", "", "25000", "", "50000",
		"12 Park Street", "Indiranagar", "Bengaluru", "Karnataka", "560038", "2", "2", "1100", "sqft",
		"semi_furnished", "parking;lift;power_backup", "2026-01-01", "active", ""},
	{"Corner office", "", "office", "sale", "", "", "12500000", "",
		"4 MG Road", "", "Pune", "Maharashtra", "", "", "2", "2400", "sqft",
		"fully_furnished", "parking", "", "active", ""},
}

// WriteSample writes the header and two example rows.
func WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(sampleRows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Row is one parsed data line. Line is 1-based and counts the header.
type Row struct {
	Line       int
	Request    propertyDTO.CreatePropertyRequest
	OwnerEmail string
	Errors     map[string][]string
}

var ErrNoHeader = errors.New("CSV has no header row")

// Parse reads a header-led CSV. Unknown columns are ignored; header names are matched
// case-insensitively. Row-level problems are collected on the row, not returned.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	get := func(rec []string, col string) string {
		i, ok := index[strings.ToLower(col)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rows = append(rows, Row{Line: line, Errors: map[string][]string{"row": {err.Error()}}})
			continue
		}
		if isBlank(rec) {
			continue
		}
		if len(rows) >= MaxImportRows {
			return rows, fmt.Errorf("too many rows, the limit is %d", MaxImportRows)
		}
		rows = append(rows, buildRow(line, func(col string) string { return get(rec, col) }))
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func buildRow(line int, get func(string) string) Row {
	row := Row{Line: line, Errors: map[string][]string{}, OwnerEmail: strings.ToLower(get("ownerEmail"))}
	req := propertyDTO.CreatePropertyRequest{
		Title:        get("title"),
		Description:  get("description"),
		PropertyType: strings.ToLower(get("propertyType")),
		ListingType:  strings.ToLower(get("listingType")),
		Address:      get("address"),
		Locality:     get("locality"),
		City:         get("city"),
		State:        get("state"),
		Pincode:      get("pincode"),
		AreaUnit:     strings.ToLower(get("areaUnit")),
		Furnishing:   strings.ToLower(get("furnishing")),
		Status:       strings.ToLower(get("status")),
	}
	if req.ListingType == "buy" {
		req.ListingType = "sale"
	}

	floatCol := func(col string) *helper.FlexFloat {
		s := strings.ReplaceAll(get(col), ",", "")
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			row.Errors[col] = append(row.Errors[col], "must be a number")
			return nil
		}
		f := helper.FlexFloat(v)
		return &f
	}
	intCol := func(col string) *helper.FlexInt {
		s := get(col)
		if s == "" {
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			row.Errors[col] = append(row.Errors[col], "must be a whole number")
			return nil
		}
		n := helper.FlexInt(v)
		return &n
	}
	req.Price = floatCol("price")
	req.Rent = floatCol("rent")
	req.SalePrice = floatCol("salePrice")
	req.Deposit = floatCol("deposit")
	req.Area = floatCol("area")
	req.Bedrooms = intCol("bedrooms")
	req.Bathrooms = intCol("bathrooms")

	if s := get("amenities"); s != "" {
		req.Amenities = strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	}
	if s := get("availableFrom"); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			row.Errors["availableFrom"] = append(row.Errors["availableFrom"], err.Error())
		} else {
			req.AvailableFrom = &d
		}
	}
	if s := get("categoryId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			row.Errors["categoryId"] = append(row.Errors["categoryId"], "must be a valid id")
		} else {
			req.CategoryID = &id
		}
	}
	row.Request = req
	return row
}
