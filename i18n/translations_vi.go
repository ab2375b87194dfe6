package i18n

var vietnameseTranslations = map[string]string{
	// Generate
	"generate.saved":        "Đã lưu bài trình bày tại: %s",
	"generate.total_slides": "Tổng số slide: %d",
	"generate.extra_file":   "Đã lưu %s tại: %s",

	// Inspect
	"inspect.header": "%s: %d slide",
	"inspect.slide":  "%2d. %s",

	// History
	"history.empty":  "Chưa có lần tạo nào",
	"history.header": "THỜI GIAN            ĐỊNH DẠNG  SLIDE  KÍCH THƯỚC  ĐƯỜNG DẪN",
	"history.row":    "%-19s  %-9s  %5d  %10d  %s",

	// Database
	"db.status":      "Phiên bản lược đồ: %s",
	"db.rolled_back": "Đã hoàn tác migration %d",

	// Commands
	"cmd.root.short":     "Tạo bài trình bày tổng quan dự án PCQM",
	"cmd.generate.short": "Tạo bài trình bày và các tệp đi kèm",
	"cmd.inspect.short":  "Liệt kê tiêu đề slide của một bài trình bày",
	"cmd.history.short":  "Hiển thị các tệp đã tạo gần đây",
	"cmd.version.short":  "In thông tin bản dựng",
	"cmd.db.short":       "Quản lý lược đồ cơ sở dữ liệu lịch sử",
	"cmd.db.status":      "Hiển thị các migration đã áp dụng",
	"cmd.db.rollback":    "Hoàn tác một migration",
}
