package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/aprilmaraat/simple-account-api/internal/logger"
	"github.com/aprilmaraat/simple-account-api/internal/models"
)

// Business-rule errors. Their messages are the exact texts carried by the
// Error envelope state.
var (
	ErrUserEmailExists  = errors.New("User email already exist.")
	ErrUserDoesNotExist = errors.New("User doesn't exist.")
	ErrEmailAlreadyUsed = errors.New("Email already used.")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailAndPassword(ctx context.Context, email, password string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.User) (int64, error)
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id int64) error
}

// TxRunner executes a function inside a transaction scope: commit when the
// function returns nil, rollback otherwise.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends a message to an address. Best-effort: failures never alter
// an already committed operation result.
type Notifier interface {
	Send(ctx context.Context, toAddress, displayName string) error
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// UserService orchestrates existence checks, mutations and transaction
// boundaries for user accounts. Every operation converts its outcome into a
// Response envelope; no error crosses the service boundary.
type UserService struct {
	reader   UserReader
	writer   UserWriter
	tx       TxRunner
	notifier Notifier
	events   EventWriter
}

// NewUserService creates a new UserService. notifier and events may be nil,
// in which case the corresponding side effects are skipped.
func NewUserService(reader UserReader, writer UserWriter, tx TxRunner, notifier Notifier, events EventWriter) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		tx:       tx,
		notifier: notifier,
		events:   events,
	}
}

// isBusinessErr reports whether err is an expected business-rule rejection
// rather than an unexpected failure.
func isBusinessErr(err error) bool {
	return errors.Is(err, ErrUserEmailExists) ||
		errors.Is(err, ErrUserDoesNotExist) ||
		errors.Is(err, ErrEmailAlreadyUsed)
}

// List returns all users in storage order.
func (svc *UserService) List(ctx context.Context) models.Response[[]models.User] {
	users, err := svc.reader.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return models.NewException[[]models.User](err)
	}
	return models.NewSuccess(&users)
}

// Detail returns the user with the given id. A missing user is a success
// with an empty payload, not an error.
func (svc *UserService) Detail(ctx context.Context, id int64) models.Response[models.User] {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "error", err)
		return models.NewException[models.User](err)
	}
	return models.NewSuccess(user)
}

// Login checks whether a user exists with the exact email and password
// pair. No credential material is returned.
func (svc *UserService) Login(ctx context.Context, req models.LoginRequest) models.Response[struct{}] {
	exists, err := svc.reader.ExistsByEmailAndPassword(ctx, req.Email, req.Password)
	if err != nil {
		logger.Log.Errorw("failed to check credentials", "email", req.Email, "error", err)
		return models.NewException[struct{}](err)
	}
	if !exists {
		return models.NewError[struct{}](ErrUserDoesNotExist.Error())
	}
	return models.NewSuccess[struct{}](nil)
}

// Register creates a new user inside a transaction and, after commit, sends
// the welcome notification. Notification failure does not change the result.
func (svc *UserService) Register(ctx context.Context, user models.User) models.Response[struct{}] {
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		exists, err := svc.reader.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserEmailExists
		}

		id, err := svc.writer.Save(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		return nil
	})
	if err != nil {
		if isBusinessErr(err) {
			return models.NewError[struct{}](err.Error())
		}
		logger.Log.Errorw("failed to register user", "email", user.Email, "error", err)
		return models.NewException[struct{}](err)
	}

	svc.notify(ctx, user)
	svc.publishEvent(ctx, models.EventUserRegistered, user)

	return models.NewSuccess[struct{}](nil)
}

// Update overwrites first name, last name and password of an existing user.
// The email is validated for uniqueness when changed but never written.
func (svc *UserService) Update(ctx context.Context, user models.User) models.Response[models.User] {
	var updated *models.User
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		existing, err := svc.reader.GetByID(ctx, user.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrUserDoesNotExist
		}

		if user.Email != existing.Email {
			taken, err := svc.reader.ExistsByEmailExcludingID(ctx, user.Email, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailAlreadyUsed
			}
		}

		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.Password = user.Password

		if err := svc.writer.Update(ctx, *existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		if isBusinessErr(err) {
			return models.NewError[models.User](err.Error())
		}
		logger.Log.Errorw("failed to update user", "id", user.ID, "error", err)
		return models.NewException[models.User](err)
	}

	svc.publishEvent(ctx, models.EventUserUpdated, *updated)

	return models.NewSuccess(updated)
}

// Delete removes the user with the given id inside a transaction.
func (svc *UserService) Delete(ctx context.Context, id int64) models.Response[struct{}] {
	var deleted *models.User
	err := svc.tx.Do(ctx, func(ctx context.Context) error {
		existing, err := svc.reader.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrUserDoesNotExist
		}

		if err := svc.writer.Delete(ctx, id); err != nil {
			return err
		}
		deleted = existing
		return nil
	})
	if err != nil {
		if isBusinessErr(err) {
			return models.NewError[struct{}](err.Error())
		}
		logger.Log.Errorw("failed to delete user", "id", id, "error", err)
		return models.NewException[struct{}](err)
	}

	svc.publishEvent(ctx, models.EventUserDeleted, *deleted)

	return models.NewSuccess[struct{}](nil)
}

// notify sends the welcome notification for a freshly registered user.
func (svc *UserService) notify(ctx context.Context, user models.User) {
	if svc.notifier == nil {
		logger.Log.Warnw("notifier not configured, skipping welcome notification", "email", user.Email)
		return
	}

	displayName := fmt.Sprintf("%s, %s", user.LastName, user.FirstName)
	if err := svc.notifier.Send(ctx, user.Email, displayName); err != nil {
		logger.Log.Errorw("failed to send welcome notification", "email", user.Email, "error", err)
	}
}

// publishEvent publishes a user lifecycle event to Kafka.
func (svc *UserService) publishEvent(ctx context.Context, eventType string, user models.User) {
	if svc.events == nil {
		logger.Log.Warnw("event writer not configured, skipping publishing", "type", eventType)
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		User:      user,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := svc.events.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("user event published", "event_id", event.EventID, "type", eventType)
	}
}
