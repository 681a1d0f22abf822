package services

import (
	"fmt"
	"slices"

	"github.com/senyabanana/notice-service/internal/models"
)

type routeGroup int

const (
	routeUnsupported routeGroup = iota
	routeEvaluation             // открытые, выборочные процедуры и маркетинговые консультации
	routeNegotiation            // прямые и переговорные процедуры
)

var methodRoutes = map[models.ProcurementMethod]routeGroup{
	models.MethodOT: routeEvaluation, models.MethodTestOT: routeEvaluation,
	models.MethodSV: routeEvaluation, models.MethodTestSV: routeEvaluation,
	models.MethodMV: routeEvaluation, models.MethodTestMV: routeEvaluation,

	models.MethodDA: routeNegotiation, models.MethodTestDA: routeNegotiation,
	models.MethodNP: routeNegotiation, models.MethodTestNP: routeNegotiation,
	models.MethodOP: routeNegotiation, models.MethodTestOP: routeNegotiation,

	models.MethodRT: routeUnsupported, models.MethodTestRT: routeUnsupported,
	models.MethodFA: routeUnsupported, models.MethodTestFA: routeUnsupported,
}

var groupStages = map[routeGroup]models.Stage{
	routeEvaluation:  models.StageEV,
	routeNegotiation: models.StageNP,
}

// RecordStage возвращает этап документа, который обновляется событием для метода закупки pmd.
func RecordStage(pmd models.ProcurementMethod) (models.Stage, error) {
	group, known := methodRoutes[pmd]
	if !known {
		return "", models.NewUnsupportedRouteError(fmt.Sprintf("unknown procurement method '%s'", pmd))
	}
	stage, ok := groupStages[group]
	if !ok {
		return "", models.NewUnsupportedRouteError(fmt.Sprintf("procurement method '%s' is not supported", pmd))
	}
	return stage, nil
}

// StageParams - значения, которыми помечается документ этапа.
type StageParams struct {
	StatusDetails      models.TenderStatusDetails
	RelatedProcessType models.RelatedProcessType
	Title              string
	Description        string
}

var stageParams = map[models.Stage]StageParams{
	models.StagePS: {
		StatusDetails:      models.DetailsPreselection,
		RelatedProcessType: models.RelationPreselection,
		Title:              "Preselection",
		Description:        "Preselection stage of the contracting process",
	},
	models.StagePQ: {
		StatusDetails:      models.DetailsPrequalification,
		RelatedProcessType: models.RelationPrequalification,
		Title:              "Prequalification",
		Description:        "Prequalification stage of the contracting process",
	},
	models.StageEV: {
		StatusDetails:      models.DetailsEvaluation,
		RelatedProcessType: models.RelationEvaluation,
		Title:              "Evaluation",
		Description:        "Evaluation stage of the contracting process",
	},
	models.StagePN: {
		StatusDetails:      models.DetailsPlanningNotice,
		RelatedProcessType: models.RelationPlanning,
		Title:              "Planning notice",
		Description:        "Planning notice of the contracting process",
	},
	models.StagePIN: {
		StatusDetails:      models.DetailsPriorNotice,
		RelatedProcessType: models.RelationPlanned,
		Title:              "Prior information notice",
		Description:        "Prior information notice of the contracting process",
	},
}

// ParamsForStage возвращает параметры этапа PS, PQ, EV, PN или PIN.
func ParamsForStage(stage models.Stage) (StageParams, error) {
	stage = models.NormalizeStage(stage)
	params, ok := stageParams[stage]
	if !ok {
		return StageParams{}, models.NewUnsupportedRouteError(fmt.Sprintf("stage '%s' has no lifecycle parameters", stage))
	}
	return params, nil
}

// NextStageParams возвращает параметры этапа, который открывается событием старта нового этапа.
// Переход возможен только в PQ или EV.
func NextStageParams(stage models.Stage) (StageParams, error) {
	stage = models.NormalizeStage(stage)
	if stage != models.StagePQ && stage != models.StageEV {
		return StageParams{}, models.NewUnsupportedRouteError(fmt.Sprintf("stage '%s' cannot be started", stage))
	}
	return ParamsForStage(stage)
}

// PreviousStageRelation возвращает тип связи нового документа с документом закрываемого этапа.
func PreviousStageRelation(prevStage models.Stage) (models.RelatedProcessType, error) {
	prevStage = models.NormalizeStage(prevStage)
	if prevStage != models.StagePS && prevStage != models.StagePQ {
		return "", models.NewUnsupportedRouteError(fmt.Sprintf("stage '%s' cannot precede a new stage", prevStage))
	}
	return stageParams[prevStage].RelatedProcessType, nil
}

// StandstillStatusDetails возвращает детализацию статуса после окончания периода ожидания.
func StandstillStatusDetails(stage models.Stage) (models.TenderStatusDetails, error) {
	switch models.NormalizeStage(stage) {
	case models.StagePS:
		return models.DetailsPreselected, nil
	case models.StagePQ:
		return models.DetailsPrequalified, nil
	}
	return "", models.NewUnsupportedRouteError(fmt.Sprintf("standstill period is not defined for stage '%s'", stage))
}

// Operation - событие, которое открывает новый процесс.
type Operation string

const (
	OperationCreateCN  Operation = "createCn"
	OperationCreatePN  Operation = "createPn"
	OperationCreatePIN Operation = "createPin"
)

// CreateParams - значения, которыми помечаются документы нового процесса.
type CreateParams struct {
	StageParams
	Tag                   models.Tag
	Status                models.TenderStatus
	IsACallForCompetition bool
}

type operationParams struct {
	tag         models.Tag
	status      models.TenderStatus
	competition bool
	stages      []models.Stage
}

var createOperations = map[Operation]operationParams{
	OperationCreateCN: {
		tag:         models.TagTender,
		status:      models.TenderActive,
		competition: true,
		stages:      []models.Stage{models.StagePS, models.StagePQ, models.StageEV},
	},
	OperationCreatePN: {
		tag:    models.TagPlanning,
		status: models.TenderPlanning,
		stages: []models.Stage{models.StagePN, models.StagePIN},
	},
	OperationCreatePIN: {
		tag:    models.TagPlanning,
		status: models.TenderPlanned,
		stages: []models.Stage{models.StagePN, models.StagePIN},
	},
}

// ParamsForCreate возвращает параметры документов, которые создаёт операция operation на этапе stage.
func ParamsForCreate(operation Operation, stage models.Stage) (CreateParams, error) {
	op, ok := createOperations[operation]
	if !ok {
		return CreateParams{}, models.NewUnsupportedRouteError(fmt.Sprintf("operation '%s' does not create a process", operation))
	}
	stage = models.NormalizeStage(stage)
	if !slices.Contains(op.stages, stage) {
		return CreateParams{}, models.NewUnsupportedRouteError(fmt.Sprintf("operation '%s' cannot open stage '%s'", operation, stage))
	}
	return CreateParams{
		StageParams:           stageParams[stage],
		Tag:                   op.tag,
		Status:                op.status,
		IsACallForCompetition: op.competition,
	}, nil
}
