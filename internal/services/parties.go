package services

import "github.com/senyabanana/notice-service/internal/models"

// PartyRegistry собирает реестр организаций документа и их роли.
// Роли организации только добавляются. Данные существующей организации
// никогда не перезаписываются данными из ссылки.
type PartyRegistry struct {
	parties []models.Organization
	index   map[string]int
}

// NewPartyRegistry создаёт реестр на основе parties из релиза. Срез parties не изменяется.
func NewPartyRegistry(parties []models.Organization) (*PartyRegistry, error) {
	registry := &PartyRegistry{
		parties: make([]models.Organization, 0, len(parties)),
		index:   make(map[string]int, len(parties)),
	}
	for _, party := range parties {
		if party.ID == "" {
			return nil, models.NewInvalidInputError("party without id in stored release")
		}
		if _, ok := registry.index[party.ID]; ok {
			continue
		}
		registry.index[party.ID] = len(registry.parties)
		registry.parties = append(registry.parties, party)
	}
	return registry, nil
}

// Add регистрирует организацию с ролью role и возвращает ссылку, сокращённую до id и name.
func (r *PartyRegistry) Add(ref models.OrganizationReference, role models.PartyRole) (models.OrganizationReference, error) {
	if ref.ID == "" {
		return models.OrganizationReference{}, models.NewInvalidInputError("organization reference '" + ref.Name + "' has no id")
	}

	if i, ok := r.index[ref.ID]; ok {
		party := r.parties[i]
		if !party.HasRole(role) {
			roles := make([]models.PartyRole, 0, len(party.Roles)+1)
			roles = append(roles, party.Roles...)
			party.Roles = append(roles, role)
			r.parties[i] = party
		}
	} else {
		r.index[ref.ID] = len(r.parties)
		r.parties = append(r.parties, organizationFromReference(ref, role))
	}
	return StripReference(ref), nil
}

// AddAll регистрирует все ссылки с ролью role.
func (r *PartyRegistry) AddAll(refs []models.OrganizationReference, role models.PartyRole) ([]models.OrganizationReference, error) {
	if refs == nil {
		return nil, nil
	}
	stripped := make([]models.OrganizationReference, 0, len(refs))
	for _, ref := range refs {
		s, err := r.Add(ref, role)
		if err != nil {
			return nil, err
		}
		stripped = append(stripped, s)
	}
	return stripped, nil
}

// Parties возвращает текущий список организаций.
func (r *PartyRegistry) Parties() []models.Organization {
	if len(r.parties) == 0 {
		return nil
	}
	return r.parties
}

// StripReference оставляет в ссылке только id и name.
func StripReference(ref models.OrganizationReference) models.OrganizationReference {
	return models.OrganizationReference{ID: ref.ID, Name: ref.Name}
}

func organizationFromReference(ref models.OrganizationReference, role models.PartyRole) models.Organization {
	org := models.Organization{
		ID:           ref.ID,
		Name:         ref.Name,
		Identifier:   ref.Identifier,
		Address:      ref.Address,
		ContactPoint: ref.ContactPoint,
		Details:      ref.Details,
		Roles:        []models.PartyRole{role},
	}
	if len(ref.AdditionalIdentifiers) > 0 {
		org.AdditionalIdentifiers = append([]models.Identifier(nil), ref.AdditionalIdentifiers...)
	}
	return org
}

func registerSuppliers(registry *PartyRegistry, awards []models.Award) ([]models.Award, error) {
	if awards == nil {
		return nil, nil
	}
	updated := make([]models.Award, 0, len(awards))
	for _, award := range awards {
		suppliers, err := registry.AddAll(award.Suppliers, models.RoleSupplier)
		if err != nil {
			return nil, err
		}
		award.Suppliers = suppliers
		updated = append(updated, award)
	}
	return updated, nil
}

func registerTenderers(registry *PartyRegistry, bids *models.Bids) (*models.Bids, error) {
	if bids == nil {
		return nil, nil
	}
	details := make([]models.Bid, 0, len(bids.Details))
	for _, bid := range bids.Details {
		tenderers, err := registry.AddAll(bid.Tenderers, models.RoleTenderer)
		if err != nil {
			return nil, err
		}
		bid.Tenderers = tenderers
		details = append(details, bid)
	}
	return &models.Bids{Details: details}, nil
}
