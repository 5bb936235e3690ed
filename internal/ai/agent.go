package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"soleledger/internal/repository"
	"soleledger/internal/service"
)

// Assistant answers natural-language questions about the shop by calling
// the same services the REST handlers use. It never touches the store
// directly, so every action it takes obeys the same validation and stock
// rules as a human operator.
type Assistant struct {
	items     *service.ItemService
	dashboard *service.DashboardService
	apiKey    string
}

func NewAssistant(items *service.ItemService, dashboard *service.DashboardService, apiKey string) *Assistant {
	return &Assistant{items: items, dashboard: dashboard, apiKey: apiKey}
}

// Run sends the user's message through one Gemini function-calling round
// trip and returns the model's final text reply.
func (a *Assistant) Run(ctx context.Context, userID uint, message string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a shoe shop's inventory system.

RULES:
1. UPDATE: If the user asks to change a price by item NAME, do NOT ask for the ID. Call 'check_inventory' to find the ID, then call 'update_item_price' with it.
2. READ: For any question about price, stock, or item details, call 'check_inventory' and read the answer out of the JSON.
3. SALES: For revenue or profit questions, call 'get_sales_summary' with a period (today, week, month, year or all).

USER: %s`, today, message)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY item details like ID, name, selling price, base price, stock quantity or status.",
				},
				{
					Name:        "update_item_price",
					Description: "Update the selling price of a specific item using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"item_id":   {Type: genai.TypeInteger, Description: "ID of the item"},
							"new_price": {Type: genai.TypeNumber, Description: "New selling price"},
						},
						Required: []string{"item_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_summary",
					Description: "Get sales count, revenue and profit for a period.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"period": {Type: genai.TypeString, Description: "One of: today, week, month, year, all"},
						},
						Required: []string{"period"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// two rounds is enough for the lookup-then-update pattern
	for i := 0; i < 2; i++ {
		call := firstFunctionCall(resp)
		if call == nil {
			break
		}
		result, err := a.execute(ctx, userID, *call)
		if err != nil {
			return "", err
		}
		resp, err = session.SendMessage(ctx, genai.FunctionResponse{
			Name:     call.Name,
			Response: result,
		})
		if err != nil {
			return "", err
		}
	}

	return textOf(resp), nil
}

func (a *Assistant) execute(ctx context.Context, userID uint, call genai.FunctionCall) (map[string]interface{}, error) {
	switch call.Name {
	case "check_inventory":
		return a.checkInventory(ctx)
	case "update_item_price":
		return a.updateItemPrice(ctx, call.Args)
	case "get_sales_summary":
		return a.salesSummary(ctx, userID, call.Args)
	default:
		return map[string]interface{}{"error": "unknown tool " + call.Name}, nil
	}
}

func (a *Assistant) checkInventory(ctx context.Context) (map[string]interface{}, error) {
	items, err := a.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}

	type row struct {
		ID           uint    `json:"id"`
		Name         string  `json:"name"`
		ShoeType     string  `json:"shoe_type"`
		Quantity     int     `json:"quantity"`
		SellingPrice float64 `json:"selling_price"`
		BasePrice    float64 `json:"base_price"`
		Status       string  `json:"status"`
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{
			ID:           it.ID,
			Name:         it.Name,
			ShoeType:     it.ShoeType,
			Quantity:     it.Quantity,
			SellingPrice: it.SellingPrice,
			BasePrice:    it.BasePrice,
			Status:       string(it.Status),
		})
	}
	jsonBytes, _ := json.Marshal(rows)
	return map[string]interface{}{"inventory": string(jsonBytes)}, nil
}

func (a *Assistant) updateItemPrice(ctx context.Context, args map[string]any) (map[string]interface{}, error) {
	idRaw, ok1 := args["item_id"].(float64)
	price, ok2 := args["new_price"].(float64)
	if !ok1 || !ok2 {
		return map[string]interface{}{"status": "bad arguments"}, nil
	}

	item, err := a.items.GetByID(ctx, uint(idRaw))
	if err != nil {
		return map[string]interface{}{"status": "item not found"}, nil
	}
	_, err = a.items.Update(ctx, item.ID, service.ItemInput{
		Name:         item.Name,
		ShoeType:     item.ShoeType,
		BasePrice:    item.BasePrice,
		SellingPrice: price,
		Quantity:     item.Quantity,
		Supplier:     item.Supplier,
		Description:  item.Description,
		ImageURL:     item.ImageURL,
	})
	if err != nil {
		return map[string]interface{}{"status": err.Error()}, nil
	}
	return map[string]interface{}{"status": "success", "new_price": price}, nil
}

func (a *Assistant) salesSummary(ctx context.Context, userID uint, args map[string]any) (map[string]interface{}, error) {
	periodStr, _ := args["period"].(string)
	if periodStr == "" {
		periodStr = string(service.PeriodToday)
	}
	summary, err := a.dashboard.Summary(ctx, userID, service.Period(periodStr), time.Time{}, time.Time{})
	if err != nil {
		return map[string]interface{}{"status": err.Error()}, nil
	}
	return map[string]interface{}{
		"sales_count": summary.Sales.Count,
		"revenue":     summary.Sales.Revenue,
		"profit":      summary.Sales.Profit,
	}, nil
}

func firstFunctionCall(resp *genai.GenerateContentResponse) *genai.FunctionCall {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			return &call
		}
	}
	return nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
