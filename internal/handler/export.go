package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/middleware"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the caller's own blogs as a downloadable file.
type ExportHandler struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewExportHandler(db *gorm.DB, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{DB: db, Log: log}
}

var exportHeaders = []string{"ID", "Title", "Description", "Content", "Created", "Updated"}

func exportRow(b *models.Blog) []string {
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.Title,
		b.Description,
		b.Content,
		b.CreatedAt.Format("2006-01-02"),
		b.UpdatedAt.Format("2006-01-02"),
	}
}

// ExportMyBlogs serves GET /my-blogs/export?format=csv|xlsx. Only the
// caller's non-deleted blogs are included.
func (h *ExportHandler) ExportMyBlogs(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized")
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be csv or xlsx")
		return
	}

	var blogs []models.Blog
	err := h.DB.
		Where("author_id = ? AND is_deleted = ?", claims.UserID, false).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		h.Log.WithError(err).Error("list blogs for export")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	if format == "csv" {
		h.writeCSV(c, blogs)
		return
	}
	h.writeXLSX(c, blogs)
}

func (h *ExportHandler) writeCSV(c *gin.Context, blogs []models.Blog) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.csv\"",
		time.Now().Format("20060102")))

	// the response is already streaming, so a write error can only be
	// logged; the client sees a truncated download
	if err := writeBlogsCSV(c.Writer, blogs); err != nil {
		h.Log.WithError(err).Error("write csv")
	}
}

func writeBlogsCSV(w io.Writer, blogs []models.Blog) error {
	writer := csv.NewWriter(w)
	writer.Write(exportHeaders)
	for i := range blogs {
		writer.Write(exportRow(&blogs[i]))
	}
	writer.Flush()
	return writer.Error()
}

func (h *ExportHandler) writeXLSX(c *gin.Context, blogs []models.Blog) {
	f := excelize.NewFile()
	sheetName := "My Blogs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range blogs {
		row := idx + 2
		for col, val := range exportRow(&blogs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 60)
	f.SetColWidth(sheetName, "E", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		h.Log.WithError(err).Error("write xlsx")
	}
}
