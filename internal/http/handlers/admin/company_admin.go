package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCompanyRequest 公司创建请求，同时开通首个登录账号。
type CreateCompanyRequest struct {
	Name          string `json:"name" binding:"required"`
	Adres         string `json:"adres"`
	Telefon       string `json:"telefon"`
	GSM           string `json:"gsm"`
	Faks          string `json:"faks"`
	Email         string `json:"email"`
	VergiDairesi  string `json:"vergi_dairesi"`
	VergiNumarasi string `json:"vergi_numarasi"`
	YetkiliAdi    string `json:"yetkili_adi"`
	YetkiliSoyadi string `json:"yetkili_soyadi"`
	YetkiliGSM    string `json:"yetkili_gsm"`

	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateCompany 创建公司
func (h *Handler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, username and password are required")
		return
	}

	company, err := h.CompanyService.CreateCompany(service.CreateCompanyInput{
		Name:          req.Name,
		Adres:         req.Adres,
		Telefon:       req.Telefon,
		GSM:           req.GSM,
		Faks:          req.Faks,
		Email:         req.Email,
		VergiDairesi:  req.VergiDairesi,
		VergiNumarasi: req.VergiNumarasi,
		YetkiliAdi:    req.YetkiliAdi,
		YetkiliSoyadi: req.YetkiliSoyadi,
		YetkiliGSM:    req.YetkiliGSM,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNameEmpty):
			response.BadRequest(c, "Company name is required")
		case errors.Is(err, service.ErrCompanyNameExists):
			response.Fail(c, response.TypeConflict, "Company name already exists")
		case errors.Is(err, service.ErrUsernameExists):
			response.Fail(c, response.TypeConflict, "Username already exists")
		case errors.Is(err, service.ErrWeakPassword):
			response.Fail(c, response.TypeDomainFailure, err.Error())
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to create company", err)
		}
		return
	}
	response.Success(c, company)
}

// UpdateCompanyRequest 公司更新请求，未出现的字段保持原值。
type UpdateCompanyRequest struct {
	Name          *string `json:"name"`
	Adres         *string `json:"adres"`
	Telefon       *string `json:"telefon"`
	GSM           *string `json:"gsm"`
	Faks          *string `json:"faks"`
	Email         *string `json:"email"`
	VergiDairesi  *string `json:"vergi_dairesi"`
	VergiNumarasi *string `json:"vergi_numarasi"`
	YetkiliAdi    *string `json:"yetkili_adi"`
	YetkiliSoyadi *string `json:"yetkili_soyadi"`
	YetkiliGSM    *string `json:"yetkili_gsm"`
	Active        *bool   `json:"aktiflik_durumu"`
}

// UpdateCompany 更新公司资料
func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.CompanyService.UpdateCompany(id, service.CompanyUpdate{
		Name:          req.Name,
		Adres:         req.Adres,
		Telefon:       req.Telefon,
		GSM:           req.GSM,
		Faks:          req.Faks,
		Email:         req.Email,
		VergiDairesi:  req.VergiDairesi,
		VergiNumarasi: req.VergiNumarasi,
		YetkiliAdi:    req.YetkiliAdi,
		YetkiliSoyadi: req.YetkiliSoyadi,
		YetkiliGSM:    req.YetkiliGSM,
		Active:        req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "Company not found")
		case errors.Is(err, service.ErrCompanyNameEmpty):
			response.BadRequest(c, "Company name is required")
		case errors.Is(err, service.ErrCompanyNameExists):
			response.Fail(c, response.TypeConflict, "Company name already exists")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to update company", err)
		}
		return
	}
	response.Success(c, company)
}

// GetCompany 公司详情
func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	company, err := h.CompanyService.GetCompany(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Company not found")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load company", err)
		return
	}
	response.Success(c, company)
}

// ListCompanies 公司列表
func (h *Handler) ListCompanies(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		parseIntQuery(c, "page"), parseIntQuery(c, "pageSize"))

	filter := repository.CompanyListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("name"),
	}
	if raw := c.Query("aktiflik_durumu"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.Active = &active
	}

	companies, total, err := h.CompanyService.ListCompanies(filter)
	if err != nil {
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load companies", err)
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, companies, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// AddCompanyUserRequest 公司账号创建请求
type AddCompanyUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddCompanyUser 为公司开通额外登录账号
func (h *Handler) AddCompanyUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AddCompanyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.CompanyService.AddCompanyUser(id, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "Company not found")
		case errors.Is(err, service.ErrUsernameExists):
			response.Fail(c, response.TypeConflict, "Username already exists")
		case errors.Is(err, service.ErrWeakPassword):
			response.Fail(c, response.TypeDomainFailure, err.Error())
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to create company user", err)
		}
		return
	}
	response.Success(c, user)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
