package worker

import (
	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/service"
)

// StartNotificationWorker subscribes the notifier to order and login events.
// Delivery runs on the publishing goroutine once the triggering write has committed.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification handlers registered")
	}
}
