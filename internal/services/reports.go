package services

import (
	"errors"
	"strings"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"gorm.io/gorm"
)

// ReportThreshold is the report count at which a post is automatically
// suspended pending review.
const ReportThreshold = 5

// FileReport records an abuse report against a post or comment. A reporter
// gets one report per piece of content and cannot report their own; category
// "other" needs a free-text reason. Reports against posts bump the post's
// report_count and suspend it once the threshold is reached — comments only
// accumulate report rows, mirroring how the product behaves.
func FileReport(reporterID uint, contentType string, contentID, contentOwnerID uint, category, reason string) error {
	if reporterID == 0 {
		return ErrUnauthenticated
	}
	if contentType != models.TargetPost && contentType != models.TargetComment {
		return errors.New("invalid report content type")
	}
	if reporterID == contentOwnerID {
		return ErrSelfReport
	}
	if !validReportCategory(category) {
		return errors.New("unknown report category")
	}
	reason = strings.TrimSpace(reason)
	if category == "other" && reason == "" {
		return ErrMissingReason
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Report{}).
			Where("content_type = ? AND content_id = ? AND reporter_id = ?",
				contentType, contentID, reporterID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateReport
		}

		report := models.Report{
			ContentType:    contentType,
			ContentID:      contentID,
			ContentOwnerID: contentOwnerID,
			ReporterID:     reporterID,
			Category:       category,
			Reason:         reason,
			Status:         models.ReportStatusPending,
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		if contentType != models.TargetPost {
			return nil
		}

		var post models.Post
		if err := withUpdateLock(tx).First(&post, contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"report_count": post.ReportCount + 1,
		}
		if post.ReportCount+1 >= ReportThreshold {
			updates["is_suspended"] = true
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateReport), errors.Is(err, ErrNotFound):
			return err
		default:
			return storeErr(err)
		}
	}
	return nil
}

// DismissReport drops a report without touching the reported content.
func DismissReport(reportID uint) error {
	result := db.DB.Delete(&models.Report{}, reportID)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReports returns every report, newest first.
func ListReports() ([]models.Report, error) {
	var reports []models.Report
	err := db.DB.Preload("Reporter").Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return reports, nil
}

func validReportCategory(category string) bool {
	for _, c := range models.ReportCategories {
		if c == category {
			return true
		}
	}
	return false
}
