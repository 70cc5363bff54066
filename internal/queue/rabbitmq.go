package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/streadway/amqp"

	"github.com/KOFI-GYIMAH/commit-risk/internal/metrics"
	"github.com/KOFI-GYIMAH/commit-risk/internal/models"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/errors"
	"github.com/KOFI-GYIMAH/commit-risk/pkg/logger"
)

const (
	AnalysisQueue = "commit_analysis"

	// * RetryQueue holds failed jobs for RetryDelay, then dead-letters them back onto AnalysisQueue
	RetryQueue       = AnalysisQueue + ".retry"
	RetryCountHeader = "x-retry-count"
	MaxRetries       = 3
	RetryDelay       = 30 * time.Second
)

type settlement int

const (
	settleAck settlement = iota
	settleDrop
	settleRetry
)

// * Analyzer scores a stored commit and appends the assessment.
type Analyzer interface {
	AnalyzeCommit(ctx context.Context, commitID int64, modelVersion string) (*models.RiskAssessment, error)
}

// * RabbitMQ publishes and consumes analysis jobs on separate channels of one connection.
type RabbitMQ struct {
	conn      *amqp.Connection
	publishCh *amqp.Channel
	consumeCh *amqp.Channel
	queue     string
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	publishCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	queue, err := publishCh.QueueDeclare(
		AnalysisQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = publishCh.QueueDeclare(
		RetryQueue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": queue.Name,
		},
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		conn:      conn,
		publishCh: publishCh,
		consumeCh: consumeCh,
		queue:     queue.Name,
	}, nil
}

func (r *RabbitMQ) PublishAnalysis(ctx context.Context, job models.AnalysisJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return r.publishCh.Publish(
		"",
		r.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// * ConsumeAnalysisJobs starts a consumer goroutine that runs until ctx is
// * cancelled or the channel closes. Deliveries are acked manually.
func (r *RabbitMQ) ConsumeAnalysisJobs(ctx context.Context, analyzer Analyzer, prefetch int) error {
	if prefetch > 0 {
		if err := r.consumeCh.Qos(prefetch, 0, false); err != nil {
			return err
		}
	}

	msgs, err := r.consumeCh.Consume(
		r.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("stopping analysis consumer")
				return
			case d, ok := <-msgs:
				if !ok {
					logger.Warn("analysis queue channel closed")
					return
				}
				r.settle(d, HandleDelivery(ctx, d.Body, analyzer))
			}
		}
	}()

	return nil
}

func (r *RabbitMQ) settle(d amqp.Delivery, err error) {
	action, retries := nextSettlement(d.Headers, err)

	var ackErr error
	switch action {
	case settleAck:
		ackErr = d.Ack(false)
	case settleDrop:
		logger.Error("dropping analysis job after %d retries (%s): %v", retries, errors.KindOf(err), err)
		ackErr = d.Nack(false, false)
	case settleRetry:
		logger.Warn("retrying analysis job in %s (retry %d/%d): %v", RetryDelay, retries, MaxRetries, err)
		if pubErr := r.publishRetry(d, retries); pubErr != nil {
			logger.Error("failed to schedule retry, requeueing: %v", pubErr)
			ackErr = d.Nack(false, true)
		} else {
			ackErr = d.Ack(false)
		}
	}
	if ackErr != nil {
		logger.Error("failed to settle delivery %d: %v", d.DeliveryTag, ackErr)
	}
}

// * nextSettlement decides what happens to a delivery given the handler result.
// * Permanent failures are dropped at once, others are retried MaxRetries times.
func nextSettlement(headers amqp.Table, err error) (settlement, int) {
	if err == nil {
		return settleAck, 0
	}

	retries := retryCount(headers)
	if isPermanent(err) || retries >= MaxRetries {
		return settleDrop, retries
	}
	return settleRetry, retries + 1
}

func retryCount(headers amqp.Table) int {
	switch v := headers[RetryCountHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// * publishRetry parks the job on RetryQueue with its retry count and a per-message TTL.
func (r *RabbitMQ) publishRetry(d amqp.Delivery, retries int) error {
	return r.publishCh.Publish(
		"",
		RetryQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  d.ContentType,
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{RetryCountHeader: int32(retries)},
			Expiration:   strconv.FormatInt(RetryDelay.Milliseconds(), 10),
			Body:         d.Body,
		},
	)
}

// * HandleDelivery decodes one job body and runs the analysis.
func HandleDelivery(ctx context.Context, body []byte, analyzer Analyzer) error {
	var job models.AnalysisJob
	if err := json.Unmarshal(body, &job); err != nil {
		metrics.JobsProcessed.WithLabelValues("invalid").Inc()
		return errors.Validation("INVALID_JOB", "Invalid analysis job", fmt.Sprintf("Error decoding message: %v", err), err)
	}

	assessment, err := analyzer.AnalyzeCommit(ctx, job.CommitID, job.ModelVersion)
	if err != nil {
		metrics.JobsProcessed.WithLabelValues("failed").Inc()
		return err
	}

	metrics.JobsProcessed.WithLabelValues("success").Inc()
	logger.Debug("analysis job for commit %d in %s scored %d (%s)",
		job.CommitID, job.RepositoryFullName, assessment.RiskScore, assessment.RiskLevel)
	return nil
}

func isPermanent(err error) bool {
	switch errors.KindOf(err) {
	case errors.KindValidation, errors.KindNotFound:
		return true
	}
	return false
}

func (r *RabbitMQ) Close() error {
	if err := r.consumeCh.Close(); err != nil {
		return err
	}
	if err := r.publishCh.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
