package services

import (
	"time"

	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// PurgeExpiredTrash permanently deletes posts that have sat in the trash
// longer than the retention window. Only runs when cleaner.enabled is set;
// by default the trash keeps everything until an explicit deletePost.
func (s *PostService) PurgeExpiredTrash(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	res := s.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&models.Post{})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		s.invalidateCounts()
	}

	return res.RowsAffected, nil
}

func (s *PostService) DoAutoTrashCleanup() {
	if !viper.GetBool("cleaner.enabled") {
		return
	}

	retention := time.Duration(viper.GetInt("cleaner.retention_days")) * 24 * time.Hour

	count, err := s.PurgeExpiredTrash(retention)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up expired trash...")
		return
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("Cleaned up expired trashed posts.")
	}
}
