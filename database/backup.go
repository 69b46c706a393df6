package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StartDailyBackupAtFixedTime snapshots an SQLite store every day at hour:min
// and removes snapshots older than retention. It never returns.
func StartDailyBackupAtFixedTime(db *gorm.DB, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next database backup scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if path, err := BackupNow(db, backupDir); err != nil {
			log.Printf("❌ Failed to back up database: %v", err)
		} else {
			log.Printf("✅ Database backed up to %s", path)
		}

		CleanupOldBackups(backupDir, retention)
	}
}

// BackupNow writes a consistent copy of the SQLite database into a
// timestamped file under backupDir and returns its path.
func BackupNow(db *gorm.DB, backupDir string) (string, error) {
	if db.Dialector.Name() != "sqlite" {
		return "", fmt.Errorf("backups are only supported for sqlite, not %s", db.Dialector.Name())
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	dest := filepath.Join(backupDir, "mydb_"+timestamp+".sqlite")
	quoted := strings.ReplaceAll(dest, "'", "''")
	if err := db.Exec("VACUUM INTO '" + quoted + "'").Error; err != nil {
		return "", err
	}
	return dest, nil
}

// CleanupOldBackups removes backup files older than retention.
func CleanupOldBackups(backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		log.Printf("❌ Failed to read backup directory: %v", err)
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "mydb_") {
			continue
		}
		path := filepath.Join(backupDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				log.Printf("❌ Failed to remove old backup %s: %v", path, err)
			} else {
				log.Printf("🗑️ Removed old backup: %s", path)
			}
		}
	}
}
