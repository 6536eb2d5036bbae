// Command genmock writes mock data fixtures: a regional waste workbook
// shaped like the published spreadsheets (title block, two-row header,
// aggregate and detail rows) and a facility roster JSON matching the
// registry API. The fixtures exercise the same header mapping and row
// selection the real sources do.
//
// Usage:
//
//	go run ./cmd/genmock -xlsx-out data/mock/waste_2022.xlsx -json-out data/mock/facilities_2023.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxOut := flag.String("xlsx-out", "", "output path for the regional waste workbook fixture")
	jsonOut := flag.String("json-out", "", "output path for the facility roster JSON fixture")
	flag.Parse()

	if *xlsxOut == "" || *jsonOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -xlsx-out, -json-out")
	}

	if err := writeWorkbook(*xlsxOut); err != nil {
		return fmt.Errorf("write workbook fixture: %w", err)
	}
	log.Printf("wrote %s", *xlsxOut)

	if err := writeRoster(*jsonOut); err != nil {
		return fmt.Errorf("write roster fixture: %w", err)
	}
	log.Printf("wrote %s", *jsonOut)
	return nil
}

// writeWorkbook produces a workbook with the published layout: two title
// rows, the category header in row 3 with merged spans left blank, the
// sub-category header in row 4, and data from row 5.
func writeWorkbook(path string) error {
	rows := [][]interface{}{
		{"2022년 전국 폐기물 발생 및 처리 현황"},
		{"(단위: 톤/일)"},
		{"시도", "시군구", "폐기물 종류", "2022발생량", "총계", "", "", "", "자가처리", "", "", "", "위탁처리", "", "", "", "공공처리", "", "", ""},
		{"", "", "", "", "재활용", "소각", "매립", "기타", "재활용", "소각", "매립", "기타", "재활용", "소각", "매립", "기타", "재활용", "소각", "매립", "기타"},
		{"서울", "중구", "합계", "100.5", "60", "20", "15.5", "5", "10", "2", "1", "0", "40", "15", "10", "3", "10", "3", "4.5", "2"},
		{"서울", "중구", "재활용", "60", "60", "0", "0", "0", "10", "0", "0", "0", "40", "0", "0", "0", "10", "0", "0", "0"},
		{"서울", "종로구", "총  계", "80", "40", "20", "15", "5", "8", "2", "1", "0", "30", "15", "10", "3", "2", "3", "4", "2"},
		{"부산", "해운대구", "합계", "-", "", "12", "8", "2", "0", "0", "0", "0", "0", "12", "8", "2", "0", "0", "0", "0"},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return err
	}
	return f.Close()
}

// rosterItem mirrors the registry API's JSON shape, string-typed
// headcount included.
type rosterItem struct {
	EntrpsNm    string `json:"ENTRPS_NM"`
	Rprsntv     string `json:"RPRSNTV"`
	Adres       string `json:"ADRES"`
	Telno       string `json:"TELNO"`
	EmplCnt     string `json:"EMPL_CNT"`
	Area        string `json:"AREA"`
	Wste        string `json:"WSTE"`
	ProductName string `json:"PRODUCT_NAME"`
	ProcessMth  string `json:"PROCESS_MTH"`
}

func writeRoster(path string) error {
	roster := map[string][]rosterItem{
		"data": {
			{
				EntrpsNm:    "한국자원순환",
				Rprsntv:     "김대표",
				Adres:       "서울 중구 세종대로 110",
				Telno:       "02-123-4567",
				EmplCnt:     "42",
				Area:        "1200",
				Wste:        "폐플라스틱",
				ProductName: "재생원료",
				ProcessMth:  "파쇄",
			},
			{
				EntrpsNm:   "부산재활용센터",
				Rprsntv:    "이대표",
				Adres:      "부산 해운대구 센텀중앙로 79",
				Telno:      "051-987-6543",
				EmplCnt:    "",
				Wste:       "폐지",
				ProcessMth: "압축",
			},
			{
				EntrpsNm: "무명업체",
				Adres:    "",
				EmplCnt:  "약 10명",
			},
		},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	out, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}
