package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err error
		vi  string
		en  string
	}{
		{&problemgen.InvalidNumberError{Field: "min", Value: "x"}, "Vui lòng nhập số hợp lệ.", "Please enter valid numbers."},
		{&problemgen.NegativeOrZeroError{Field: "count"}, "Các giá trị phải là số dương.", "Values must be positive."},
		{&problemgen.RangeOrderError{Min: 5, Max: 1}, "Số bắt đầu không được lớn hơn số kết thúc.", "The start number cannot be greater than the end number."},
		{problemgen.ErrNoOperationSelected, "Vui lòng chọn ít nhất một phép tính.", "Please select at least one operation."},
		{&problemgen.CountLimitError{Count: 500, Limit: 200}, "Số lượng bài tối đa là 200.", "At most 200 problems per worksheet."},
		{&problemgen.GenerationFailedError{Err: errors.New("x")}, "Không thể tạo bài tập. Mô hình có thể đã trả về phản hồi không mong muốn.", "Failed to generate math problems. The model may have returned an unexpected response."},
		{&problemgen.MalformedResponseError{Err: errors.New("x")}, "Không thể tạo bài tập. Mô hình có thể đã trả về phản hồi không mong muốn.", "Failed to generate math problems. The model may have returned an unexpected response."},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.err, LocaleVI); got != tt.vi {
			t.Errorf("%T vi: got %q", tt.err, got)
		}
		if got := ErrorMessage(tt.err, LocaleEN); got != tt.en {
			t.Errorf("%T en: got %q", tt.err, got)
		}
	}
}

func TestErrorMessage_Wrapped(t *testing.T) {
	err := fmt.Errorf("form: %w", &problemgen.RangeOrderError{Min: 3, Max: 2})
	if got := ErrorMessage(err, LocaleEN); got != "The start number cannot be greater than the end number." {
		t.Errorf("got %q", got)
	}
}

func TestErrorMessage_Nil(t *testing.T) {
	if got := ErrorMessage(nil, LocaleVI); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestControllerMessage(t *testing.T) {
	c := New(LatestRequestWins)
	if c.Message(LocaleVI) != "" {
		t.Error("idle controller should have no message")
	}
	c.Reject(problemgen.ErrNoOperationSelected)
	if c.Message(LocaleEN) != "Please select at least one operation." {
		t.Errorf("got %q", c.Message(LocaleEN))
	}
	c.Begin(cfgA)
	if c.Message(LocaleEN) != "" {
		t.Error("message must clear while loading")
	}
}

func TestParseLocale(t *testing.T) {
	if ParseLocale("en") != LocaleEN || ParseLocale("vi") != LocaleVI || ParseLocale("fr") != LocaleVI {
		t.Error("unexpected locale mapping")
	}
}
