package jobs

import (
	"context"
	"sort"
	"time"

	"NeuroScanAI/models"
	"NeuroScanAI/repository"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Backlog is the number of stale pending appointments of one doctor.
type Backlog struct {
	DoctorID   string
	DoctorName string
	Pending    int
	Oldest     time.Time
}

type Reporter struct {
	appointments repository.AppointmentRepository
	staleAfter   time.Duration
	now          func() time.Time
}

func NewReporter(appointments repository.AppointmentRepository, staleAfter time.Duration) *Reporter {
	return &Reporter{appointments: appointments, staleAfter: staleAfter, now: time.Now}
}

/*
* Schedule the pending report
* The returned cron is already running; Stop it on shutdown
 */
func StartDailyScheduler(schedule string, r *Reporter) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Println("Running pending appointment report...")
		if _, err := r.RunPendingReport(context.Background()); err != nil {
			log.Println("Error from RunPendingReport:", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

/*
* Find pending appointments older than the stale window
* Group them per doctor, largest backlog first
* Log one line per doctor
 */
func (r *Reporter) RunPendingReport(ctx context.Context) ([]Backlog, error) {
	cutoff := r.now().Add(-r.staleAfter)
	apts, err := r.appointments.Find(ctx, repository.AppointmentFilter{
		Status:        models.StatusPending,
		CreatedBefore: cutoff,
	})
	if err != nil {
		return nil, err
	}

	byDoctor := make(map[string]*Backlog)
	for _, a := range apts {
		b, ok := byDoctor[a.DoctorID]
		if !ok {
			b = &Backlog{DoctorID: a.DoctorID, DoctorName: a.DoctorName, Oldest: a.CreatedAt}
			byDoctor[a.DoctorID] = b
		}
		b.Pending++
		if a.CreatedAt.Before(b.Oldest) {
			b.Oldest = a.CreatedAt
		}
	}

	report := make([]Backlog, 0, len(byDoctor))
	for _, b := range byDoctor {
		report = append(report, *b)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Pending != report[j].Pending {
			return report[i].Pending > report[j].Pending
		}
		return report[i].DoctorID < report[j].DoctorID
	})

	for _, b := range report {
		log.WithFields(log.Fields{
			"doctor_id":   b.DoctorID,
			"doctor_name": b.DoctorName,
			"pending":     b.Pending,
			"oldest":      b.Oldest.Format(time.RFC3339),
		}).Warn("Stale pending appointments")
	}
	log.WithField("doctors", len(report)).Info("Pending appointment report done")
	return report, nil
}
