package worker

import (
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
)

// StartDeliveryWorker registers ticket delivery handlers.
func StartDeliveryWorker(deliveryService *service.DeliveryService) {
	if deliveryService == nil {
		return
	}
	deliveryService.RegisterHandlers()
}
