package history

import "github.com/abhisek/mathsheet/internal/session"

type labels struct {
	title        string
	loading      string
	empty        string
	errorPrefix  string
	summary      string
	more         string
	exported     string
	exportFailed string
	hintNavigate string
	hintExport   string
	hintLoad     string
	hintBack     string
}

var labelTable = map[session.Locale]labels{
	session.LocaleVI: {
		title:        "Lịch sử",
		loading:      "Đang tải lịch sử...",
		empty:        "Chưa có bài tập nào được lưu.",
		errorPrefix:  "Lỗi",
		summary:      "%d bài, %d-%d, %s, %d phép tính",
		more:         "... và %d hàng nữa",
		exported:     "Đã lưu: %s",
		exportFailed: "Không thể xuất tệp: %v",
		hintNavigate: "Di chuyển",
		hintExport:   "Xuất DOCX",
		hintLoad:     "Dùng lại",
		hintBack:     "Quay lại",
	},
	session.LocaleEN: {
		title:        "History",
		loading:      "Loading history...",
		empty:        "No saved worksheets yet.",
		errorPrefix:  "Error",
		summary:      "%d problems, %d-%d, %s, %d op(s)",
		more:         "... and %d more rows",
		exported:     "Saved: %s",
		exportFailed: "Export failed: %v",
		hintNavigate: "Navigate",
		hintExport:   "Export DOCX",
		hintLoad:     "Reuse",
		hintBack:     "Back",
	},
}

func labelsFor(l session.Locale) labels {
	if t, ok := labelTable[l]; ok {
		return t
	}
	return labelTable[session.LocaleVI]
}
