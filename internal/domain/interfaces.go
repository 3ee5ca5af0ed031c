package domain

import (
	"context"
	"errors"
	"time"
)

// ErrMailerNotConfigured возвращается, если SMTP-учётные данные не заданы.
// Отправка при этом молча пропускается, это не ошибка цикла.
var ErrMailerNotConfigured = errors.New("smtp не настроен")

// ErrSheetNotConfigured возвращается, если внешняя таблица не настроена.
var ErrSheetNotConfigured = errors.New("таблица подписчиков не настроена")

// Sampler возвращает свежий снимок условий для фиксированных координат.
// Оба внешних запроса (погода и качество воздуха) должны завершиться успешно,
// частичного снимка не бывает.
type Sampler interface {
	Sample(ctx context.Context) (Reading, error)
}

// MailMessage — одно письмо одному получателю.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer доставляет письмо через внешний SMTP-транспорт.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// SubscriberRepo управляет упорядоченным списком подписчиков.
type SubscriberRepo interface {
	// AddSubscriber добавляет адрес, если его ещё нет.
	// Возвращает true, если запись была создана.
	AddSubscriber(ctx context.Context, email string) (Subscriber, bool, error)
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}

// StateStore хранит NotificationState между перезапусками.
type StateStore interface {
	// Load возвращает сохранённое состояние. Отсутствующий или повреждённый
	// файл трактуется как «сервис ещё не работал», а не как ошибка.
	Load() NotificationState
	// Save атомарно перезаписывает состояние целиком.
	Save(state NotificationState) error
}

// SheetLog — журнал подписчиков во внешней таблице.
type SheetLog interface {
	AppendSubscriber(ctx context.Context, email string) error
	ListEmails(ctx context.Context) ([]string, error)
}

// WelcomeJob содержит задачу фоновой обработки новой подписки:
// запись в таблицу и немедленный приветственный отчёт.
type WelcomeJob struct {
	ID          string    `json:"job_id,omitempty"`
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requested_at"`
}

// WelcomeQueue описывает очередь задач приветствия.
type WelcomeQueue interface {
	Enqueue(ctx context.Context, job WelcomeJob) error
	Pop(ctx context.Context) (WelcomeJob, error)
}

// Cache используется для простых TTL-хранилищ.
type Cache interface {
	Once(key string, ttl time.Duration, fn func() error) error
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
}

// Dispatcher рассылает отчёт подписчикам. Broadcast дожидается завершения
// всех отправок и возвращает число успешно доставленных писем; ошибки
// отдельных получателей логируются и не прерывают остальных.
type Dispatcher interface {
	SendTo(ctx context.Context, email string, reading Reading, level AlertLevel, isAlert bool) error
	Broadcast(ctx context.Context, emails []string, reading Reading, level AlertLevel, isAlert bool) int
}

// OpsNotifier уведомляет операторов о переходах уровня тревоги и сбоях цикла.
// Реализации не возвращают ошибку наверх: сбой уведомления логируется и не
// прерывает работу цикла.
type OpsNotifier interface {
	Notify(ctx context.Context, text string)
}
