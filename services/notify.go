package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sciflow/models"
)

// Notifier verteilt Benachrichtigungen an alle Benutzer.
type Notifier struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewNotifier erstellt einen neuen Notifier.
func NewNotifier(db *gorm.DB, logger *zap.Logger) *Notifier {
	return &Notifier{DB: db, Logger: logger}
}

// NotifyAll legt für jeden Benutzer außer dem Auslöser eine Notification an.
// Läuft in der übergebenen Transaktion: schlägt ein Insert fehl, rollt die
// gesamte auslösende Erstellung mit zurück; ein teilweiser Fan-out ist kein
// gültiger Zustand.
//
// Synchroner, ungebatchter Broadcast ohne Backpressure. Bei der angenommenen
// kleinen Benutzerzahl in Ordnung; für größere Deployments ist das die
// Skalierungsgrenze dieses Bausteins.
func (n *Notifier) NotifyAll(tx *gorm.DB, excludeUserID uint, title, message string, conferenceID *uint) error {
	var userIDs []uint
	if err := tx.Model(&models.User{}).
		Where("id <> ?", excludeUserID).
		Pluck("id", &userIDs).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, models.Notification{
			UserID:       id,
			ConferenceID: conferenceID,
			Title:        title,
			Message:      message,
		})
	}
	if err := tx.Create(&notifications).Error; err != nil {
		return err
	}

	notificationsCounter.Add(float64(len(notifications)))
	n.Logger.Info("Benachrichtigungen verteilt",
		zap.String("title", title), zap.Int("recipients", len(notifications)))
	return nil
}
