package handlers

import (
	"net/http"
	"strings"
	"time"

	"angkot/internal/repositories"
	"angkot/internal/services"
	"angkot/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportService() services.ReportService {
	return services.ReportService{Store: repositories.LedgerRepository{}}
}

func docsService() services.DocsService {
	return services.DocsService{
		Reports: reportService(),
		Store:   repositories.LedgerRepository{},
	}
}

// reportDay reads the optional date query param (DD-MM-YYYY), default today.
func reportDay(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return utils.Today(), true
	}
	day, err := utils.ParseReportDay(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", "format tanggal tidak valid, gunakan DD-MM-YYYY", err)
		return time.Time{}, false
	}
	return day, true
}

type fareLineResponse struct {
	Passenger string `json:"passenger"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
}

type driverSectionResponse struct {
	Driver   string             `json:"driver"`
	Fares    []fareLineResponse `json:"fares"`
	Subtotal int                `json:"subtotal"`
}

type dailyReportResponse struct {
	ChatID  int64                   `json:"chat_id"`
	Date    string                  `json:"date"`
	Drivers []driverSectionResponse `json:"drivers"`
	Total   int                     `json:"total"`
}

// GET /api/reports/daily?chat_id=&date=
func GetDailyReport(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	day, ok := reportDay(c)
	if !ok {
		return
	}

	report, err := reportService().DailyReport(c.Request.Context(), chatID, day)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := dailyReportResponse{
		ChatID:  report.ChatID,
		Date:    utils.FormatReportDay(report.Day),
		Drivers: []driverSectionResponse{},
		Total:   report.Total,
	}
	for _, section := range report.Sections {
		sec := driverSectionResponse{
			Driver:   section.Driver,
			Fares:    []fareLineResponse{},
			Subtotal: section.Subtotal,
		}
		for _, fare := range section.Fares {
			sec.Fares = append(sec.Fares, fareLineResponse{
				Passenger: fare.Passenger,
				Category:  string(fare.Category),
				Price:     fare.Price,
			})
		}
		resp.Drivers = append(resp.Drivers, sec)
	}

	c.JSON(http.StatusOK, resp)
}

// GET /api/reports/daily/pdf?chat_id=&date=
func GetDailyReportPDF(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	day, ok := reportDay(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := docsService().GenerateDailyReportPDF(c.Request.Context(), chatID, day)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/exports/legs.csv?chat_id=&date=
func GetLegsCSV(c *gin.Context) {
	chatID, ok := chatIDQuery(c)
	if !ok {
		return
	}
	day, ok := reportDay(c)
	if !ok {
		return
	}

	data, filename, err := docsService().GenerateLegsCSV(c.Request.Context(), chatID, day)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
