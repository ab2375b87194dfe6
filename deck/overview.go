package deck

import (
	"fmt"
	"math"

	"pcqmdeck/evm"
)

// OverviewSnapshot is the sample project behind the EVM slides
var OverviewSnapshot = evm.Snapshot{BAC: 100, PV: 60, EV: 50, AC: 55}

// OverviewSlideCount is the number of slides Overview produces
const OverviewSlideCount = 21

func colorRef(c Color) *Color {
	return &c
}

func statusColor(s evm.Status) *Color {
	switch s {
	case evm.Good:
		return colorRef(Success)
	case evm.Warning:
		return colorRef(Warning)
	default:
		return colorRef(Danger)
	}
}

// Overview builds the project overview deck
func Overview() Deck {
	return Deck{
		Title:   "Hệ thống Quản lý Chi phí & Chất lượng Dự án",
		Author:  "PCQM",
		Figures: OverviewSnapshot,
		Slides: []Slide{
			titleSlide("HỆ THỐNG QUẢN LÝ CHI PHÍ\n& CHẤT LƯỢNG DỰ ÁN",
				"Báo cáo Tổng quan Chức năng | Tháng 01/2026"),

			contentSlide("📋", "NỘI DUNG TRÌNH BÀY",
				"Mục tiêu và vấn đề cần giải quyết",
				"Các chức năng đã hoàn thành (15+ modules)",
				"Chỉ số EVM - Dự báo chi phí dự án",
				"Giá trị kinh doanh & ROI",
				"Hướng phát triển tiếp theo",
			),

			sectionSlide("VẤN ĐỀ HIỆN TẠI", "Những khó khăn trong quản lý dự án"),

			tableSlide("⚠️", "VẤN ĐỀ & GIẢI PHÁP",
				[]string{"Vấn đề hiện tại", "Giải pháp của hệ thống"},
				[]string{"Không biết dự án đang tốn bao nhiêu", "Dashboard hiển thị chi phí real-time"},
				[]string{"Không dự báo được tổng chi phí", "Hệ thống tự tính EAC (Estimate at Completion)"},
				[]string{"Phát hiện vấn đề khi đã quá muộn", fmt.Sprintf("Cảnh báo tự động: %s / %s / %s", evm.Good.Label(), evm.Warning.Label(), evm.AtRisk.Label())},
				[]string{"Quyết định dựa trên cảm tính", "Số liệu và biểu đồ trực quan"},
				[]string{"Mất nhiều thời gian làm báo cáo", "Báo cáo tự động trong vài giây"},
			),

			sectionSlide("CÁC CHỨC NĂNG ĐÃ HOÀN THÀNH", "15+ modules hoạt động"),

			tableSlide("🔧", "TỔNG QUAN CHỨC NĂNG",
				[]string{"Module", "Mô tả", "Lợi ích"},
				[]string{"Dashboard", "Tổng quan tất cả dự án", "Nắm bắt tình hình trong 30 giây"},
				[]string{"Quản lý Phase", "Chia dự án thành giai đoạn", "Phát hiện sớm vấn đề"},
				[]string{"Screen/Function", "Theo dõi từng chức năng", "Không bỏ sót công việc"},
				[]string{"Nhân sự", "Quản lý team & phân công", "Phân bổ nguồn lực hợp lý"},
				[]string{"Effort Tracking", "Ghi nhận công sức", "Số liệu minh bạch"},
				[]string{"Testing/QA", "Theo dõi chất lượng", "Đảm bảo quality"},
			),

			tableSlide("🔧", "TỔNG QUAN CHỨC NĂNG (tiếp)",
				[]string{"Module", "Mô tả", "Lợi ích"},
				[]string{"Báo cáo tự động", "Tuần / Phase / Project", "Tiết kiệm hàng giờ"},
				[]string{"Chỉ số EVM", "SPI, CPI, EAC, VAC", "Dự báo chi phí chính xác"},
				[]string{"Biểu đồ", "6+ loại charts", "Trực quan dễ hiểu"},
				[]string{"Năng suất Team", "Phân tích theo người/vai trò", "So sánh hiệu suất"},
				[]string{"Cấu hình", "Ngày lễ, giờ làm việc", "Linh hoạt theo công ty"},
			),

			sectionSlide("CHỈ SỐ EVM", "Earned Value Management - Chuẩn quốc tế PMI"),

			evmBasicsSlide(OverviewSnapshot),
			forecastSlide(OverviewSnapshot),
			statusMeaningSlide(),

			sectionSlide("GIÁ TRỊ KINH DOANH", "ROI và lợi ích đạt được"),

			tableSlide("⏱️", "TIẾT KIỆM THỜI GIAN",
				[]string{"Công việc", "Trước đây", "Với hệ thống", "Tiết kiệm"},
				[]string{"Tổng hợp báo cáo tuần", "2-4 giờ", "5 phút", "~95%"},
				[]string{"Kiểm tra tình trạng dự án", "Họp 1 giờ", "30 giây", "~99%"},
				[]string{"Tính dự báo ngân sách", "Nửa ngày", "Tự động", "100%"},
				[]string{"Setup dự án mới", "1-2 ngày", "30 phút", "~90%"},
			),

			contentSlide("💰", "ROI ƯỚC TÍNH",
				"5 PM sử dụng hệ thống × 4 giờ tiết kiệm/tuần = 20 giờ/tuần",
				"20 giờ × 4 tuần × 12 tháng = 960 giờ/năm",
				"Quy đổi: ~5.5 man-month/năm tiết kiệm được",
				"",
				"GIÁ TRỊ KHÁC (khó đo lường):",
				"• Phát hiện sớm dự án có vấn đề → Tiết kiệm chi phí sửa chữa",
				"• Báo cáo chuyên nghiệp → Tăng độ tin cậy với khách hàng",
				"• Dữ liệu lịch sử → Cải thiện ước lượng dự án tương lai",
			),

			tableSlide("🛡️", "GIẢM THIỂU RỦI RO",
				[]string{"Rủi ro", "Cách hệ thống giúp giảm thiểu"},
				[]string{"Vượt ngân sách", "Cảnh báo sớm khi CPI < 1.0, dự báo EAC"},
				[]string{"Trễ deadline", "Theo dõi SPI, delay rate, cảnh báo khi chậm"},
				[]string{"Chất lượng kém", "Theo dõi pass rate, defect density"},
				[]string{"Thiếu minh bạch", "Dữ liệu real-time, báo cáo tự động"},
				[]string{"Quyết định sai", "Ra quyết định dựa trên dữ liệu"},
			),

			sectionSlide("HƯỚNG PHÁT TRIỂN", "Giai đoạn tiếp theo"),

			tableSlide("🚀", "ĐỀ XUẤT PHÁT TRIỂN GIAI ĐOẠN 2",
				[]string{"Tính năng", "Giá trị kỳ vọng", "Ưu tiên"},
				[]string{"Tích hợp Jira/Azure DevOps", "Đồng bộ dữ liệu tự động", "Cao"},
				[]string{"Dashboard cho khách hàng", "Khách tự theo dõi, tăng tin cậy", "Cao"},
				[]string{"Xuất PDF/Excel", "Gửi báo cáo cho stakeholders", "Trung bình"},
				[]string{"Mobile App", "Xem báo cáo mọi lúc mọi nơi", "Trung bình"},
				[]string{"So sánh nhiều dự án", "Benchmark hiệu suất", "Thấp"},
			),

			sectionSlide("TÓM TẮT", ""),

			metricsSlide("NHỮNG GÌ ĐÃ HOÀN THÀNH",
				Metric{Name: "Modules chức năng", Value: "15+", Desc: "Đã hoạt động", Color: colorRef(Success)},
				Metric{Name: "API Endpoints", Value: "60+", Desc: "Backend services", Color: colorRef(Primary)},
				Metric{Name: "Màn hình giao diện", Value: "10+", Desc: "Frontend screens", Color: colorRef(Secondary)},
				Metric{Name: "Loại biểu đồ", Value: "6", Desc: "Charts & Graphs", Color: colorRef(Primary)},
				Metric{Name: "Loại báo cáo", Value: "3", Desc: "Tuần/Phase/Project", Color: colorRef(Secondary)},
				Metric{Name: "Tự động hóa", Value: "80%", Desc: "Công việc báo cáo", Color: colorRef(Success)},
			),

			highlightSlide("THÔNG ĐIỆP CHÍNH",
				"Hệ thống không chỉ THEO DÕI dự án - mà còn DỰ BÁO và CẢNH BÁO SỚM để ban lãnh đạo có thể HÀNH ĐỘNG kịp thời, tiết kiệm chi phí và giảm rủi ro.",
				"Áp dụng chuẩn EVM quốc tế | Tự động hóa 80% báo cáo | Trực quan hóa dữ liệu"),

			titleSlide("CẢM ƠN QUÝ VỊ\nĐÃ LẮNG NGHE", "Sẵn sàng giải đáp thắc mắc"),
		},
	}
}

func evmBasicsSlide(s evm.Snapshot) Slide {
	spi, cpi := s.SPI(), s.CPI()
	return metricsSlide("CÁC CHỈ SỐ EVM CƠ BẢN",
		Metric{Name: "BAC (Budget at Completion)", Value: evm.ManMonths(s.BAC), Desc: "Tổng ngân sách dự kiến", Color: colorRef(Primary)},
		Metric{Name: "PV (Planned Value)", Value: evm.ManMonths(s.PV), Desc: "Giá trị kế hoạch đến nay", Color: colorRef(Secondary)},
		Metric{Name: "EV (Earned Value)", Value: evm.ManMonths(s.EV), Desc: "Giá trị thực tế hoàn thành", Color: colorRef(Success)},
		Metric{Name: "AC (Actual Cost)", Value: evm.ManMonths(s.AC), Desc: "Chi phí thực tế đã bỏ ra", Color: colorRef(Warning)},
		Metric{Name: "SPI = EV/PV", Value: evm.Index(spi), Desc: scheduleDesc(spi), Color: indexColor(spi)},
		Metric{Name: "CPI = EV/AC", Value: evm.Index(cpi), Desc: costDesc(cpi), Color: statusColor(evm.ClassifyCost(cpi))},
	)
}

func forecastSlide(s evm.Snapshot) Slide {
	vac := s.VAC()
	tcpi := s.TCPI()
	status := evm.ClassifyCost(s.CPI())

	vacDesc := fmt.Sprintf("Vượt %s so với budget", evm.ManMonths(-vac))
	if vac >= 0 {
		vacDesc = fmt.Sprintf("Tiết kiệm %s so với budget", evm.ManMonths(vac))
	}
	tcpiDesc := fmt.Sprintf("Cần tăng %d%% hiệu suất", evm.Points(tcpi))
	if tcpi <= 1 {
		tcpiDesc = "Giữ hiệu suất hiện tại"
	}
	statusDesc := "Tiếp tục theo dõi"
	if status != evm.Good {
		statusDesc = "Cần review kế hoạch"
	}

	return metricsSlide(`DỰ BÁO CHI PHÍ - "Cuối cùng tốn bao nhiêu?"`,
		Metric{Name: "EAC (Estimate at Completion)", Value: evm.ManMonths(s.EAC()), Desc: "Dự kiến tổng chi phí", Color: overrunColor(vac)},
		Metric{Name: "VAC (Variance at Completion)", Value: evm.ManMonths(vac), Desc: vacDesc, Color: overrunColor(vac)},
		Metric{Name: "TCPI", Value: evm.Index(tcpi), Desc: tcpiDesc, Color: statusColor(tcpiStatus(tcpi))},
		Metric{Name: "Tiến độ", Value: evm.Percent(s.Progress()), Desc: "Đã hoàn thành", Color: colorRef(Primary)},
		Metric{Name: "Budget còn lại", Value: evm.ManMonths(s.RemainingBudget()), Desc: fmt.Sprintf("Để hoàn thành %s còn lại", evm.Percent(1-s.Progress())), Color: colorRef(Secondary)},
		Metric{Name: "Trạng thái", Value: status.Label(), Desc: statusDesc, Color: statusColor(status)},
	)
}

func statusMeaningSlide() Slide {
	return tableSlide("🚦", "Ý NGHĨA TRẠNG THÁI DỰ ÁN",
		[]string{"Trạng thái", "Điều kiện", "Hành động"},
		[]string{evm.Good.Badge(), fmt.Sprintf("CPI ≥ %.1f, Pass Rate ≥ %.0f%%", evm.CPIGood, evm.PassRateGood), "Tiếp tục theo dõi"},
		[]string{evm.Warning.Badge(), fmt.Sprintf("CPI %.2f-%.1f hoặc Pass Rate %.0f-%.0f%%", evm.CPIWarning, evm.CPIGood, evm.PassRateWarning, evm.PassRateGood), "Review kế hoạch"},
		[]string{evm.AtRisk.Badge(), fmt.Sprintf("CPI < %.2f hoặc Pass Rate < %.0f%%", evm.CPIWarning, evm.PassRateWarning), "Can thiệp ngay"},
	)
}

func scheduleDesc(spi float64) string {
	if spi >= 1 {
		return fmt.Sprintf("Nhanh %d%% so với kế hoạch", evm.Points(spi))
	}
	return fmt.Sprintf("Chậm %d%% so với kế hoạch", evm.Points(spi))
}

func costDesc(cpi float64) string {
	if cpi >= 1 {
		return fmt.Sprintf("Tiết kiệm %d%% ngân sách", evm.Points(cpi))
	}
	return fmt.Sprintf("Vượt %d%% ngân sách", evm.Points(cpi))
}

// indexColor grades an index by its displayed two-decimal value
func indexColor(v float64) *Color {
	shown := math.Round(v*100) / 100
	switch {
	case shown >= 1:
		return colorRef(Success)
	case shown > evm.CPIWarning:
		return colorRef(Warning)
	default:
		return colorRef(Danger)
	}
}

func overrunColor(vac float64) *Color {
	if vac < 0 {
		return colorRef(Danger)
	}
	return colorRef(Success)
}

func tcpiStatus(tcpi float64) evm.Status {
	switch {
	case tcpi <= 1:
		return evm.Good
	case tcpi <= 1.2:
		return evm.Warning
	default:
		return evm.AtRisk
	}
}

func titleSlide(title, subtitle string) Slide {
	return Slide{Kind: KindTitle, Title: title, Subtitle: subtitle}
}

func sectionSlide(title, subtitle string) Slide {
	return Slide{Kind: KindSection, Title: title, Subtitle: subtitle}
}

func contentSlide(icon, title string, items ...string) Slide {
	return Slide{Kind: KindContent, Icon: icon, Title: title, Items: items}
}

func tableSlide(icon, title string, headers []string, rows ...[]string) Slide {
	return Slide{Kind: KindTable, Icon: icon, Title: title, Table: &Table{Headers: headers, Rows: rows}}
}

func metricsSlide(title string, metrics ...Metric) Slide {
	return Slide{Kind: KindMetrics, Title: title, Metrics: metrics}
}

func highlightSlide(title, main, sub string) Slide {
	return Slide{Kind: KindHighlight, Title: title, Main: main, Sub: sub}
}
