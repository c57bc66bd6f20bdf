package booking

import (
	"strings"

	"github.com/thanhlp18/homestay-booking-sub000/internal/pkg/validator"
)

// fieldMessages is keyed by the last segment of the failing field path.
var fieldMessages = map[string]string{
	"fullName":      "Vui lòng nhập họ tên",
	"phone":         "Số điện thoại không hợp lệ",
	"email":         "Email không hợp lệ",
	"cccd":          "Số CCCD phải gồm 9 hoặc 12 chữ số",
	"guests":        "Số khách phải lớn hơn 0",
	"notes":         "Ghi chú quá dài",
	"paymentMethod": "Phương thức thanh toán không hợp lệ",
	"selectedSlots": "Vui lòng chọn ít nhất một khung giờ",
	"roomId":        "Thiếu phòng hoặc khung giờ",
	"timeSlotId":    "Thiếu phòng hoặc khung giờ",
	"bookingDate":   "Ngày không hợp lệ (YYYY-MM-DD)",
}

// NormalizePhone strips separators and turns a +84 prefix into a leading 0.
func NormalizePhone(raw string) string {
	return validator.NormalizePhone(raw)
}

// fieldError turns a tag validation failure into a ValidationError for the
// first failing field. Other errors are returned as nil.
func fieldError(err error) error {
	path, tag, ok := validator.FirstError(err)
	if !ok {
		return nil
	}
	name := path
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	msg, found := fieldMessages[name]
	if !found {
		msg = "Giá trị không hợp lệ (" + tag + ")"
	}
	return invalid(path, msg)
}

func validateRequest(req any) error {
	if err := validator.Struct(req); err != nil {
		if verr := fieldError(err); verr != nil {
			return verr
		}
		return err
	}
	return nil
}

// validateCustomer normalizes guest fields in place and checks the request
// against its binding rules.
func validateCustomer(req *CreateBookingRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = NormalizePhone(req.Phone)
	req.CCCD = strings.ReplaceAll(strings.TrimSpace(req.CCCD), " ", "")
	return validateRequest(req)
}
