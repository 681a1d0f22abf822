package models

import "strings"

type (
	Tag                 string // Тип события, породившего релиз
	PartyRole           string // Роль организации в процессе
	Stage               string // Этап закупки
	ProcurementMethod   string // Метод закупки (pmd)
	TenderStatus        string // Статус тендера
	TenderStatusDetails string // Детализация статуса тендера
	RelatedProcessType  string // Тип связи между документами
)

const (
	TagTender             Tag = "tender"
	TagTenderUpdate       Tag = "tenderUpdate"
	TagTenderCancellation Tag = "tenderCancellation"
	TagAward              Tag = "award"
	TagAwardUpdate        Tag = "awardUpdate"
	TagAwardCancellation  Tag = "awardCancellation"
	TagContract           Tag = "contract"
	TagContractUpdate     Tag = "contractUpdate"
	TagCompiled           Tag = "compiled"
	TagPlanning           Tag = "planning"

	RoleBuyer           PartyRole = "buyer"
	RoleSupplier        PartyRole = "supplier"
	RoleFunder          PartyRole = "funder"
	RolePayer           PartyRole = "payer"
	RoleTenderer        PartyRole = "tenderer"
	RoleProcuringEntity PartyRole = "procuringEntity"

	StageMS  Stage = "MS"  // Мастер-документ процесса
	StagePS  Stage = "PS"  // Предварительный отбор
	StagePQ  Stage = "PQ"  // Предварительная квалификация
	StageEV  Stage = "EV"  // Оценка
	StageNP  Stage = "NP"  // Переговорная процедура
	StageAC  Stage = "AC"  // Контракт
	StagePN  Stage = "PN"  // План закупки
	StagePIN Stage = "PIN" // Предварительное уведомление
	StageEI  Stage = "EI"  // Статья расходов
	StageFS  Stage = "FS"  // Источник финансирования

	TenderActive       TenderStatus = "active"
	TenderCancelled    TenderStatus = "cancelled"
	TenderComplete     TenderStatus = "complete"
	TenderPlanning     TenderStatus = "planning"
	TenderPlanned      TenderStatus = "planned"
	TenderUnsuccessful TenderStatus = "unsuccessful"
	TenderWithdrawn    TenderStatus = "withdrawn"

	DetailsEmpty            TenderStatusDetails = "empty"
	DetailsPreselection     TenderStatusDetails = "preselection"
	DetailsPreselected      TenderStatusDetails = "preselected"
	DetailsPrequalification TenderStatusDetails = "prequalification"
	DetailsPrequalified     TenderStatusDetails = "prequalified"
	DetailsEvaluation       TenderStatusDetails = "evaluation"
	DetailsAwarding         TenderStatusDetails = "awarding"
	DetailsAuction          TenderStatusDetails = "auction"
	DetailsSuspended        TenderStatusDetails = "suspended"
	DetailsExecution        TenderStatusDetails = "execution"
	DetailsComplete         TenderStatusDetails = "complete"
	DetailsPlanningNotice   TenderStatusDetails = "planning notice"
	DetailsPriorNotice      TenderStatusDetails = "prior notice"

	RelationParent           RelatedProcessType = "parent"
	RelationPlanning         RelatedProcessType = "planning"
	RelationPlanned          RelatedProcessType = "x_planned"
	RelationPreselection     RelatedProcessType = "x_preselection"
	RelationPrequalification RelatedProcessType = "x_prequalification"
	RelationEvaluation       RelatedProcessType = "x_evaluation"
	RelationExpenditureItem  RelatedProcessType = "x_expenditureItem"
	RelationFundingSource    RelatedProcessType = "x_fundingSource"
)

const (
	MethodOT     ProcurementMethod = "OT"
	MethodTestOT ProcurementMethod = "TEST_OT"
	MethodSV     ProcurementMethod = "SV"
	MethodTestSV ProcurementMethod = "TEST_SV"
	MethodMV     ProcurementMethod = "MV"
	MethodTestMV ProcurementMethod = "TEST_MV"
	MethodDA     ProcurementMethod = "DA"
	MethodTestDA ProcurementMethod = "TEST_DA"
	MethodNP     ProcurementMethod = "NP"
	MethodTestNP ProcurementMethod = "TEST_NP"
	MethodOP     ProcurementMethod = "OP"
	MethodTestOP ProcurementMethod = "TEST_OP"
	MethodRT     ProcurementMethod = "RT"
	MethodTestRT ProcurementMethod = "TEST_RT"
	MethodFA     ProcurementMethod = "FA"
	MethodTestFA ProcurementMethod = "TEST_FA"
)

// NormalizeStage приводит код этапа к верхнему регистру.
func NormalizeStage(stage Stage) Stage {
	return Stage(strings.ToUpper(string(stage)))
}
