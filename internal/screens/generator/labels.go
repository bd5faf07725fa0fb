package generator

import "github.com/abhisek/mathsheet/internal/session"

type labels struct {
	title       string
	min         string
	max         string
	count       string
	add         string
	subtract    string
	multiply    string
	divide      string
	numOps      string
	parens      string
	generate    string
	generating  string
	results     string
	more        string
	exported    string
	exportFail  string
	nothingYet  string
	loaded      string
	hintNext    string
	hintToggle  string
	hintRun     string
	hintExport  string
	hintHistory string
	hintQuit    string
}

var labelTable = map[session.Locale]labels{
	session.LocaleVI: {
		title:       "Tạo bài tập",
		min:         "Số bắt đầu",
		max:         "Số kết thúc",
		count:       "Số lượng bài",
		add:         "Phép cộng (+)",
		subtract:    "Phép trừ (-)",
		multiply:    "Phép nhân (×)",
		divide:      "Phép chia (÷)",
		numOps:      "Số phép tính",
		parens:      "Dùng dấu ngoặc",
		generate:    "Tạo bài tập",
		generating:  "Đang tạo bài tập...",
		results:     "Bài tập (%d)",
		more:        "... và %d hàng nữa",
		exported:    "Đã lưu: %s",
		exportFail:  "Không thể xuất tệp: %v",
		nothingYet:  "Chưa có bài tập để xuất.",
		loaded:      "Đã nạp cài đặt của bài #%d.",
		hintNext:    "Chuyển ô",
		hintToggle:  "Chọn",
		hintRun:     "Tạo",
		hintExport:  "Xuất DOCX",
		hintHistory: "Lịch sử",
		hintQuit:    "Thoát",
	},
	session.LocaleEN: {
		title:       "Worksheet",
		min:         "Start number",
		max:         "End number",
		count:       "Problems",
		add:         "Addition (+)",
		subtract:    "Subtraction (-)",
		multiply:    "Multiplication (×)",
		divide:      "Division (÷)",
		numOps:      "Operations each",
		parens:      "Use parentheses",
		generate:    "Generate",
		generating:  "Generating problems...",
		results:     "Problems (%d)",
		more:        "... and %d more rows",
		exported:    "Saved: %s",
		exportFail:  "Export failed: %v",
		nothingYet:  "Nothing to export yet.",
		loaded:      "Loaded settings from worksheet #%d.",
		hintNext:    "Next field",
		hintToggle:  "Toggle",
		hintRun:     "Generate",
		hintExport:  "Export DOCX",
		hintHistory: "History",
		hintQuit:    "Quit",
	},
}

func labelsFor(l session.Locale) labels {
	if t, ok := labelTable[l]; ok {
		return t
	}
	return labelTable[session.LocaleVI]
}
