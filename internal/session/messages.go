package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// Locale selects the language of user-facing text.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"
)

// ParseLocale maps a settings value to a Locale. Anything other than "en"
// falls back to Vietnamese.
func ParseLocale(s string) Locale {
	if s == string(LocaleEN) {
		return LocaleEN
	}
	return LocaleVI
}

var messages = map[Locale]map[problemgen.Kind]string{
	LocaleVI: {
		problemgen.KindInvalidNumber:       "Vui lòng nhập số hợp lệ.",
		problemgen.KindNegativeOrZero:      "Các giá trị phải là số dương.",
		problemgen.KindRangeOrder:          "Số bắt đầu không được lớn hơn số kết thúc.",
		problemgen.KindNoOperationSelected: "Vui lòng chọn ít nhất một phép tính.",
		problemgen.KindCountLimit:          "Số lượng bài tối đa là %d.",
		problemgen.KindGenerationFailed:    "Không thể tạo bài tập. Mô hình có thể đã trả về phản hồi không mong muốn.",
		problemgen.KindMalformedResponse:   "Không thể tạo bài tập. Mô hình có thể đã trả về phản hồi không mong muốn.",
		problemgen.KindUnknown:             "Đã xảy ra lỗi không mong muốn.",
	},
	LocaleEN: {
		problemgen.KindInvalidNumber:       "Please enter valid numbers.",
		problemgen.KindNegativeOrZero:      "Values must be positive.",
		problemgen.KindRangeOrder:          "The start number cannot be greater than the end number.",
		problemgen.KindNoOperationSelected: "Please select at least one operation.",
		problemgen.KindCountLimit:          "At most %d problems per worksheet.",
		problemgen.KindGenerationFailed:    "Failed to generate math problems. The model may have returned an unexpected response.",
		problemgen.KindMalformedResponse:   "Failed to generate math problems. The model may have returned an unexpected response.",
		problemgen.KindUnknown:             "Something went wrong.",
	},
}

// ErrorMessage returns the user-facing text for err, or "" for nil.
func ErrorMessage(err error, locale Locale) string {
	kind := problemgen.KindOf(err)
	if kind == problemgen.KindNone {
		return ""
	}
	table, ok := messages[locale]
	if !ok {
		table = messages[LocaleVI]
	}
	msg := table[kind]
	if kind == problemgen.KindCountLimit {
		var limit *problemgen.CountLimitError
		if errors.As(err, &limit) {
			return fmt.Sprintf(msg, limit.Limit)
		}
		return fmt.Sprintf(msg, problemgen.MaxCount)
	}
	return msg
}

// Message returns the text for the single message slot, or "" when no
// error is shown.
func (c *Controller) Message(locale Locale) string {
	return ErrorMessage(c.Err(), locale)
}
