package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type TableController struct {
	Tables  *services.TableRegistry
	Engine  *services.AssignmentEngine
	History *services.HistoryLedger
}

func NewTableController(tables *services.TableRegistry, engine *services.AssignmentEngine, history *services.HistoryLedger) *TableController {
	return &TableController{Tables: tables, Engine: engine, History: history}
}

// GetAllTables -> menampilkan seluruh meja, bisa difilter ?status=FREE
func (tc *TableController) GetAllTables(c *gin.Context) {
	status := strings.ToUpper(c.Query("status"))
	var (
		tables []models.Table
		err    error
	)
	if status != "" {
		tables, err = tc.Tables.ListByStatus(status)
	} else {
		tables, err = tc.Tables.List()
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	table, err := tc.Tables.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) GetTableStats(c *gin.Context) {
	stats, err := tc.Tables.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table stats", stats)
}

// SuggestTable -> ?guests=4&customer_id=1 ; hanya saran, tidak menahan meja
func (tc *TableController) SuggestTable(c *gin.Context) {
	guests, err := strconv.Atoi(c.Query("guests"))
	if err != nil || guests < 1 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("guests must be a positive number"))
		return
	}
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 64)

	suggestion, err := tc.Engine.SuggestTable(guests, uint(customerID), c.Query("special_requests"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if suggestion == nil {
		utils.RespondJSON(c, http.StatusOK, "No table available", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Suggested table", suggestion)
}

func (tc *TableController) GetTableHistory(c *gin.Context) {
	id, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	entries, err := tc.History.ForTable(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table history", entries)
}
