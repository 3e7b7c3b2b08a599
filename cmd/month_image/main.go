package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/calendar"
	"github.com/Freeeeeet/barber_bot/internal/ledger"
	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/render"
	"github.com/Freeeeeet/barber_bot/internal/repository"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"go.uber.org/zap"
)

func main() {
	out := flag.String("out", "month.png", "output PNG path")
	flag.Parse()

	ctx := context.Background()
	logger := zap.NewNop()

	l, err := ledger.Open(ctx, repository.NewMemoryBlobRepository(), "sample", nil, logger)
	if err != nil {
		fmt.Printf("Ошибка открытия леджера: %v\n", err)
		os.Exit(1)
	}

	catalog := model.DefaultCatalog()
	hours := slots.DefaultHours()
	svc := service.NewBookingService(catalog, hours, l, time.Now, 5, nil, logger)

	// Тестовые данные: завтра занято целиком, послезавтра частично
	today := svc.Today()
	full := today.AddDays(1)
	if err := fillDay(ctx, l, hours, full, catalog[1]); err != nil {
		fmt.Printf("Ошибка заполнения дня: %v\n", err)
		os.Exit(1)
	}
	partial := today.AddDays(2)
	_ = l.Claim(ctx, partial.Key(), "10:00", catalog[1].ID)
	_ = l.Claim(ctx, partial.Key(), "14:00", catalog[1].ID)

	sess := svc.NewSession()
	view, err := svc.Dispatch(ctx, sess, service.SelectService{ServiceID: catalog[1].ID})
	if err != nil {
		fmt.Printf("Ошибка построения вида: %v\n", err)
		os.Exit(1)
	}

	imageData, err := render.MonthImage(view)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", *out)
	fmt.Printf("📅 Месяц: %s %d\n", view.Month.Month, view.Month.Year)
	fmt.Printf("📊 Записей: %d\n", len(l.List()))
}

// fillDay занимает все слоты дня для услуги
func fillDay(ctx context.Context, l *ledger.Ledger, hours slots.BusinessHours, day calendar.Date, svc model.Service) error {
	for start := hours.Start; start+svc.Duration <= hours.End; start += svc.Duration {
		if err := l.Claim(ctx, day.Key(), slots.FormatClock(start), svc.ID); err != nil {
			return err
		}
	}
	return nil
}
