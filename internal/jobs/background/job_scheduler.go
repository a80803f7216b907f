package background

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"challanmart/internal/repositories"
	"challanmart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the challan archival sweep: every order without an
// archived PDF gets rendered and uploaded to object storage.
type JobScheduler struct {
	scheduler gocron.Scheduler
	orderRepo repositories.OrderRepository
	renderer  services.ChallanRenderer
	minioSvc  services.MinioService
	bucket    string
	batchSize int
}

// NewJobScheduler creates a scheduler with the archive sweep registered
// at the given interval. Singleton mode keeps overlapping sweeps from
// double-uploading.
func NewJobScheduler(orderRepo repositories.OrderRepository, renderer services.ChallanRenderer,
	minioSvc services.MinioService, bucket string, batchSize int, interval time.Duration) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		orderRepo: orderRepo,
		renderer:  renderer,
		minioSvc:  minioSvc,
		bucket:    bucket,
		batchSize: batchSize,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.ArchiveChallans, context.Background()),
		gocron.WithName("challan-archive-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// ArchiveChallans renders and uploads one batch of unarchived orders.
// Failures are logged and left for the next sweep.
func (js *JobScheduler) ArchiveChallans(ctx context.Context) error {
	orders, err := js.orderRepo.ListUnarchived(ctx, js.batchSize)
	if err != nil {
		log.Printf("Failed to list unarchived orders: %v", err)
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	archived := 0
	for _, order := range orders {
		pdfBytes, err := js.renderer.Render(order)
		if err != nil {
			log.Printf("Failed to render challan %d for archival: %v", order.DCNo, err)
			continue
		}

		objectName := fmt.Sprintf("dc-%d.pdf", order.DCNo)
		if err := js.minioSvc.UploadDocument(ctx, js.bucket, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
			log.Printf("Failed to upload challan %d: %v", order.DCNo, err)
			continue
		}

		if err := js.orderRepo.MarkArchived(ctx, order.DCNo); err != nil {
			log.Printf("Failed to mark challan %d archived: %v", order.DCNo, err)
			continue
		}
		archived++
	}

	log.Printf("Archived %d of %d pending challans", archived, len(orders))
	return nil
}
