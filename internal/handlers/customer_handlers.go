package handlers

import (
	"errors"
	"net/http"

	"tailorbook_backend/internal/models"
	"tailorbook_backend/internal/services"
	"tailorbook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// SearchRequest is the lookup query from the search bar.
type SearchRequest struct {
	Query string `json:"query" form:"query" binding:"required"`
}

// CreateCustomer handles the creation of a new customer record.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CustomerFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError(err, "CreateCustomer: Failed to bind request")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), utils.SeverityWarning, err.Error()))
		return
	}

	customer, err := h.customerService.CreateCustomer(req)
	if err != nil {
		utils.LogError(err, "CreateCustomer: Error from customerService.CreateCustomer")
		switch {
		case errors.Is(err, services.ErrCustomerValidation), errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Validation failed: "+err.Error(), utils.SeverityWarning, err.Error()))
		case errors.Is(err, services.ErrIdentifierExhausted):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Could not assign a customer ID, please retry.", utils.SeverityDanger, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to create customer.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer added successfully",
		"severity": utils.SeveritySuccess,
		"customer": customer,
	})
}

// GetCustomers handles fetching all customers, most recent activity first.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.GetCustomers()
	if err != nil {
		utils.LogError(err, "GetCustomers: Error from customerService.GetCustomers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch customers.", utils.SeverityDanger, "Internal error"))
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, gin.H{"data": customers, "total": len(customers)})
}

// GetCustomerByID handles fetching a single customer by their customer ID.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customerID := c.Param("customerId")

	customer, err := h.customerService.GetCustomerByCustomerID(customerID)
	if err != nil {
		utils.LogError(err, "GetCustomerByID: Error for customer "+customerID)
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Customer not found.", utils.SeverityDanger, err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to fetch customer.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles rewriting a customer's form-captured fields.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("customerId")

	var req services.CustomerFormRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError(err, "UpdateCustomer: Failed to bind request for "+customerID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), utils.SeverityWarning, err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(customerID, req)
	if err != nil {
		utils.LogError(err, "UpdateCustomer: Error for customer "+customerID)
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Customer not found to update.", utils.SeverityDanger, err.Error()))
		case errors.Is(err, services.ErrCustomerValidation), errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Validation failed: "+err.Error(), utils.SeverityWarning, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to update customer.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer updated successfully",
		"severity": utils.SeveritySuccess,
		"customer": customer,
	})
}

// DeleteCustomer handles deleting a customer record.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("customerId")

	if err := h.customerService.DeleteCustomer(customerID); err != nil {
		utils.LogError(err, "DeleteCustomer: Error for customer "+customerID)
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Customer not found to delete.", utils.SeverityDanger, err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to delete customer.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer deleted successfully",
		"severity": utils.SeveritySuccess,
	})
}

// SearchCustomer resolves a free-text query (phone first, then name) to one customer.
func (h *CustomerHandler) SearchCustomer(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Search query is required.", utils.SeverityWarning, err.Error()))
		return
	}

	customer, err := h.customerService.SearchCustomer(req.Query)
	if err != nil {
		if errors.Is(err, services.ErrNoMatch) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"No customer found with that name or phone.", utils.SeverityDanger, err.Error()))
		} else {
			utils.LogError(err, "SearchCustomer: Error from customerService.SearchCustomer")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Search failed.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Found: " + customer.Name,
		"severity": utils.SeveritySuccess,
		"customer": customer,
	})
}

// PrintCustomer returns the payload backing the printable measurement slip.
func (h *CustomerHandler) PrintCustomer(c *gin.Context) {
	customerID := c.Param("customerId")

	view, err := h.customerService.GetPrintView(customerID)
	if err != nil {
		utils.LogError(err, "PrintCustomer: Error for customer "+customerID)
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Customer not found.", utils.SeverityDanger, err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to build print view.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, view)
}
