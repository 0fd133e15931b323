package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/db"
	"github.com/urgelog/internal/domain"
	"github.com/urgelog/internal/service"
)

type urgePayload struct {
	StartedAt     string   `json:"started_at"`
	Screen        string   `json:"screen"`
	Level         int      `json:"level"`
	Kind          string   `json:"kind"`
	Completed     bool     `json:"completed"`
	Action        string   `json:"action"`
	Outcome       string   `json:"outcome"`
	Trigger       *string  `json:"trigger"`
	SpendCategory *string  `json:"spend_category"`
	SpendItem     *string  `json:"spend_item"`
	SpendAmount   *float64 `json:"spend_amount"`
}

type checkinPayload struct {
	Date        string   `json:"date"`
	Mood        int      `json:"mood"`
	Fatigue     int      `json:"fatigue"`
	Urge        int      `json:"urge"`
	Note        *string  `json:"note"`
	NightUse    *bool    `json:"night_use"`
	SpendFlag   *bool    `json:"spend_flag"`
	SpendAmount *float64 `json:"spend_amount"`
}

type subscriptionPayload struct {
	Status        string     `json:"status"`
	ProductID     string     `json:"product_id"`
	BillingPeriod string     `json:"billing_period"`
	StartedAt     *time.Time `json:"started_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

type profilePayload struct {
	Locale            string `json:"locale"`
	GoalType          string `json:"goal_type"`
	NotificationStyle string `json:"notification_style"`
}

// LogUrge 记录一次冲动事件并刷新当日进度快照
func (a *API) LogUrge(c *gin.Context) {
	var payload urgePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "请求体不是合法 JSON")
		return
	}

	input := service.UrgeInput{
		Screen:        payload.Screen,
		Level:         payload.Level,
		Kind:          payload.Kind,
		Completed:     payload.Completed,
		Action:        payload.Action,
		Outcome:       payload.Outcome,
		Trigger:       payload.Trigger,
		SpendCategory: payload.SpendCategory,
		SpendItem:     payload.SpendItem,
		SpendAmount:   payload.SpendAmount,
	}

	if raw := strings.TrimSpace(payload.StartedAt); raw != "" {
		startedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "started_at 不是合法的 RFC3339 时间")
			return
		}
		input.StartedAt = startedAt
	}

	event, err := a.urges.Log(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUrgeLevel) ||
			errors.Is(err, service.ErrInvalidUrgeKind) ||
			errors.Is(err, service.ErrInvalidUrgeOutcome) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(c, err)
		return
	}

	progress, err := a.progress.ApplyEvent(event)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"event": event, "progress": progress})
}

// ListUrges 返回指定日期区间内的冲动事件
func (a *API) ListUrges(c *gin.Context) {
	today := domain.DateOf(a.clock.Now())

	start, err := queryDate(c, "start", today)
	if err != nil {
		respondError(c, http.StatusBadRequest, "start 不是合法日期")
		return
	}
	end, err := queryDate(c, "end", today)
	if err != nil {
		respondError(c, http.StatusBadRequest, "end 不是合法日期")
		return
	}

	events, err := a.urges.ListBetween(start, end)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"events": events})
}

// UpsertCheckin 创建或补记当日签到
func (a *API) UpsertCheckin(c *gin.Context) {
	var payload checkinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "请求体不是合法 JSON")
		return
	}

	record, err := a.checkins.Upsert(service.CheckinInput{
		Date:        payload.Date,
		Mood:        payload.Mood,
		Fatigue:     payload.Fatigue,
		Urge:        payload.Urge,
		Note:        payload.Note,
		NightUse:    payload.NightUse,
		SpendFlag:   payload.SpendFlag,
		SpendAmount: payload.SpendAmount,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"checkin": record})
}

// GetCheckin 返回指定日期的签到
func (a *API) GetCheckin(c *gin.Context) {
	record, err := a.checkins.GetByDate(c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrCheckinNotFound) {
			respondError(c, http.StatusNotFound, "当天没有签到记录")
			return
		}
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"checkin": record})
}

// GetProgress 返回最近一条进度快照
func (a *API) GetProgress(c *gin.Context) {
	record, err := a.progress.Latest()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	if record == nil {
		record = &db.ProgressRecord{
			Date: domain.DateOf(a.clock.Now()).String(),
			Rank: domain.RankStart,
		}
	}

	respondSuccess(c, http.StatusOK, gin.H{"progress": record})
}

// CompleteContent 标记内容单元完成并刷新当日进度
func (a *API) CompleteContent(c *gin.Context) {
	record, err := a.content.MarkCompleted(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrContentIDRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondStorageError(c, err)
		return
	}

	progress, err := a.progress.ApplyContentCompletion()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"content": record, "progress": progress})
}

// GetProfile 返回用户档案
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profiles.Get()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"profile": profile})
}

// SaveProfile 创建或更新用户档案
func (a *API) SaveProfile(c *gin.Context) {
	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "请求体不是合法 JSON")
		return
	}

	profile, err := a.profiles.Save(service.ProfileInput{
		Locale:            payload.Locale,
		GoalType:          payload.GoalType,
		NotificationStyle: payload.NotificationStyle,
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"profile": profile})
}

// GetSubscription 返回当前订阅状态
func (a *API) GetSubscription(c *gin.Context) {
	state, err := a.subscriptions.Get()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"subscription": state})
}

// ReplaceSubscription 用同步结果整行替换订阅状态
func (a *API) ReplaceSubscription(c *gin.Context) {
	var payload subscriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "请求体不是合法 JSON")
		return
	}

	state, err := a.subscriptions.Replace(service.SubscriptionInput{
		Status:        payload.Status,
		ProductID:     payload.ProductID,
		BillingPeriod: payload.BillingPeriod,
		StartedAt:     payload.StartedAt,
		ExpiresAt:     payload.ExpiresAt,
	})
	if err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"subscription": state})
}

// WipeAll 清空全部数据
func (a *API) WipeAll(c *gin.Context) {
	if err := a.wipe.DeleteAll(); err != nil {
		respondStorageError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{})
}

func queryDate(c *gin.Context, key string, fallback domain.Date) (domain.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	return domain.ParseDate(raw)
}
