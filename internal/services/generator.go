package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/senyabanana/notice-service/internal/models"

	"github.com/google/uuid"
)

const idSeparator = "-"

// IdentityGenerator выдаёт идентификаторы релизов, документов и поправок.
// Идентификатор релиза - ocid документа с суффиксом из миллисекунд UTC,
// поэтому два события одного документа в одну миллисекунду получат одинаковый id.
type IdentityGenerator struct {
	now func() time.Time
}

// NewIdentityGenerator создаёт генератор с заданными часами.
func NewIdentityGenerator(now func() time.Time) *IdentityGenerator {
	if now == nil {
		now = time.Now
	}
	return &IdentityGenerator{now: now}
}

func (g *IdentityGenerator) millis() string {
	return strconv.FormatInt(g.now().UTC().UnixMilli(), 10)
}

// NewReleaseID возвращает новый id релиза документа ocid.
func (g *IdentityGenerator) NewReleaseID(ocid string) string {
	return ocid + idSeparator + g.millis()
}

// NewOCID возвращает ocid нового документа этапа stage внутри процесса cpid.
func (g *IdentityGenerator) NewOCID(cpid string, stage models.Stage) string {
	return cpid + idSeparator + strings.ToUpper(string(stage)) + idSeparator + g.millis()
}

// NewAmendmentID возвращает id поправки.
func (g *IdentityGenerator) NewAmendmentID() string {
	return uuid.New().String()
}

// NewRelatedProcessID возвращает id перекрёстной ссылки.
func (g *IdentityGenerator) NewRelatedProcessID() string {
	return uuid.New().String()
}

// ValidateOCID проверяет, что ocid принадлежит процессу cpid.
func ValidateOCID(cpid, ocid string) error {
	if cpid == "" || ocid == "" {
		return models.NewInvalidInputError("cpid and ocid are required")
	}
	if ocid != cpid && !strings.HasPrefix(ocid, cpid+idSeparator) {
		return models.NewInvalidInputError("malformed ocid '" + ocid + "' for cpid '" + cpid + "'")
	}
	return nil
}
