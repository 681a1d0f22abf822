package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/notice-service/internal/models"
	"github.com/senyabanana/notice-service/internal/repository"
	"github.com/senyabanana/notice-service/internal/services"
	"github.com/senyabanana/notice-service/internal/utils"
)

type commandFunc func(ctx context.Context, ec models.EventContext, data json.RawMessage) (*models.Acknowledgement, error)

// CommandHandler - структура для обработки команд по документам закупки.
type CommandHandler struct {
	History  repository.HistoryRepository
	Logger   *log.Logger
	Timeout  time.Duration
	commands map[string]commandFunc
}

// NewCommandHandler создаёт новый экземпляр CommandHandler.
func NewCommandHandler(
	awards *services.AwardService,
	tenders *services.TenderService,
	contracts *services.ContractService,
	enquiries *services.EnquiryService,
	budgets *services.BudgetService,
	history repository.HistoryRepository,
	logger *log.Logger,
	timeout time.Duration,
) *CommandHandler {
	return &CommandHandler{
		History: history,
		Logger:  logger,
		Timeout: timeout,
		commands: map[string]commandFunc{
			"createCn":               handle(tenders.CreateCN),
			"createPn":               handle(tenders.CreatePN),
			"createPin":              handle(tenders.CreatePIN),
			"createAward":            handle(awards.CreateAward),
			"startAwardPeriod":       handle(awards.StartAwardPeriod),
			"evaluateAward":          handle(awards.EvaluateAward),
			"endAwardPeriod":         handle(awards.EndAwardPeriod),
			"tenderPeriodEnd":        handle(tenders.TenderPeriodEnd),
			"tenderPeriodEndAuction": handle(tenders.TenderPeriodEndAuction),
			"auctionPeriodEnd":       handle(tenders.AuctionPeriodEnd),
			"suspendTender":          handle(tenders.SuspendTender),
			"unsuspendTender":        handle(tenders.UnsuspendTender),
			"tenderUnsuccessful":     handle(tenders.TenderUnsuccessful),
			"awardByBid":             handle(tenders.AwardByBid),
			"awardPeriodEnd":         handle(tenders.AwardPeriodEnd),
			"standstillPeriod":       handle(tenders.StandstillPeriod),
			"startNewStage":          handle(tenders.StartNewStage),
			"activateContract":       handle(contracts.ActivateContract),
			"cancelCan":              handle(contracts.CancelCAN),
			"createEnquiry":          handle(enquiries.CreateEnquiry),
			"addAnswer":              handle(enquiries.AddAnswer),
			"createEi":               handle(budgets.CreateEI),
			"updateEi":               handle(budgets.UpdateEI),
			"createFs":               handle(budgets.CreateFS),
			"updateFs":               handle(budgets.UpdateFS),
		},
	}
}

// handle декодирует и проверяет данные события перед вызовом обработчика.
func handle[T any](fn func(context.Context, models.EventContext, T) (*models.Acknowledgement, error)) commandFunc {
	return func(ctx context.Context, ec models.EventContext, data json.RawMessage) (*models.Acknowledgement, error) {
		var payload T
		if len(data) > 0 {
			if err := json.Unmarshal(data, &payload); err != nil {
				return nil, models.NewInvalidInputError("invalid command data: " + err.Error())
			}
		}
		if err := models.ValidatePayload(payload); err != nil {
			return nil, err
		}
		return fn(ctx, ec, payload)
	}
}

// HandleCommand обрабатывает запросы POST /api/command.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, models.NewInvalidInputError("invalid method, only POST is allowed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var msg models.CommandMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.fail(w, unknownCommand, started, models.NewInvalidInputError("invalid request body"))
		return
	}
	command, ok := h.commands[msg.Command]
	if !ok {
		h.fail(w, unknownCommand, started, models.NewInvalidInputError("unknown command '"+msg.Command+"'"))
		return
	}
	if err := models.ValidatePayload(msg); err != nil {
		h.fail(w, msg.Command, started, err)
		return
	}
	msg.Context.Stage = models.NormalizeStage(msg.Context.Stage)
	msg.Context.PrevStage = models.NormalizeStage(msg.Context.PrevStage)

	replayed, err := h.History.Get(ctx, msg.ID, msg.Command)
	if err != nil {
		h.fail(w, msg.Command, started, err)
		return
	}
	if replayed != nil {
		h.Logger.Printf("command %s/%s already processed, replaying response", msg.Command, msg.ID)
		observeCommand(msg.Command, resultReplayed, started)
		utils.SendJSON(w, http.StatusOK, models.CommandResponse{ID: msg.ID, Data: replayed})
		return
	}

	ack, err := command(ctx, msg.Context, msg.Data)
	if err != nil {
		h.fail(w, msg.Command, started, err)
		return
	}
	if err = h.History.Save(ctx, msg.ID, msg.Command, *ack); err != nil {
		h.Logger.Println(err)
	}
	if len(ack.Updated) > 1 {
		h.Logger.Printf("command %s updated documents %v", msg.Command, ack.Updated)
	}

	observeCommand(msg.Command, resultOK, started)
	utils.SendJSON(w, http.StatusOK, models.CommandResponse{ID: msg.ID, Data: ack})
}

func (h *CommandHandler) fail(w http.ResponseWriter, command string, started time.Time, err error) {
	h.Logger.Printf("command %s failed: %v", command, err)

	var errorResponse *models.ErrorResponse
	if !errors.As(err, &errorResponse) {
		errorResponse = models.NewErrorResponse(http.StatusInternalServerError, "failed to process command")
	}
	observeCommand(command, string(errorResponse.Kind), started)
	utils.SendErrorResponse(w, errorResponse)
}
