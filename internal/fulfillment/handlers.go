package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopmate-fulfillment/server/internal/catalog"
	"github.com/shopmate-fulfillment/server/internal/fulfillment/prompt"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

// Supported intent names, as produced by the NLU layer.
const (
	IntentProductSearch         = "ProductSearch"
	IntentOrderStatus           = "OrderStatus"
	IntentGetProductReviews     = "GetProductReviews"
	IntentGetProductDescription = "GetProductDescription"
	IntentTranslateLastResult   = "TranslateLastResult"
	IntentGeneralKnowledge      = "GeneralKnowledge"
	IntentListAllProducts       = "ListAllProducts"
)

const (
	defaultTranslationLanguage = "English"
	searchResultLimit          = 3
	inventoryPageSize          = 100
	inventoryExampleCount      = 5
)

// Catalog is the product-catalog adapter surface the handlers depend on.
type Catalog interface {
	SearchProducts(ctx context.Context, query string) ([]catalog.Product, error)
	Cart(ctx context.Context, orderID string) (*catalog.Cart, error)
	ListProducts(ctx context.Context, limit int) (*catalog.ProductList, error)
	ProductURL(productID int) string
}

// TextGenerator is the generative-text adapter surface: prompt in, text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fulfillment implements one handler per supported intent over the injected
// adapters. Each handler validates input, makes at most one call per adapter,
// and converts every failure into a user-visible reply; nothing escapes to
// the dispatcher.
type Fulfillment struct {
	catalog   Catalog
	generator TextGenerator
	registry  Registry
}

func New(catalog Catalog, generator TextGenerator) *Fulfillment {
	f := &Fulfillment{catalog: catalog, generator: generator}
	f.registry = Registry{
		IntentProductSearch:         f.ProductSearch,
		IntentOrderStatus:           f.OrderStatus,
		IntentGetProductReviews:     f.GetProductReviews,
		IntentGetProductDescription: f.GetProductDescription,
		IntentTranslateLastResult:   f.TranslateLastResult,
		IntentGeneralKnowledge:      f.GeneralKnowledge,
		IntentListAllProducts:       f.ListAllProducts,
	}
	return f
}

// Registry returns the intent table built at construction time.
func (f *Fulfillment) Registry() Registry {
	return f.registry
}

// ProductSearch looks the term up in the catalog and replies with a rich list
// of the top matches. The recallable state gets a short confirmation string
// instead of the structured payload.
func (f *Fulfillment) ProductSearch(ctx context.Context, conv *Conversation) {
	term := conv.Request().StringParam("product_name", "product_catalog")
	if term == "" {
		conv.AddText("I'm sorry, I couldn't figure out what to search for. Please be more specific.")
		return
	}

	products, err := f.catalog.SearchProducts(ctx, term)
	if err != nil {
		logx.Error().Err(err).Str("term", term).Msg("ProductSearch: catalog lookup failed")
		reply := "Maaf kijiye, system mein kuch kharabi hai."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	if len(products) == 0 {
		reply := fmt.Sprintf("Maaf Kijiye, mujhe '%s' se milta julta koi product nahi mila.", term)
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	if len(products) > searchResultLimit {
		products = products[:searchResultLimit]
	}

	items := make([]RichItem, 0, len(products))
	for _, p := range products {
		items = append(items, RichItem{
			Title:      p.Title,
			Subtitle:   fmt.Sprintf("Price: $%s | Rating: %s ★", formatNumber(p.Price), formatNumber(p.Rating)),
			ImageURL:   p.Thumbnail,
			ActionLink: f.catalog.ProductURL(p.ID),
		})
	}
	conv.AddRichList(items)
	conv.SaveLastResponse(ctx, fmt.Sprintf("Maine %s ke liye kuch products dhoonde hain.", term))
}

// OrderStatus fetches the order by id and narrates its status through the
// generative model.
func (f *Fulfillment) OrderStatus(ctx context.Context, conv *Conversation) {
	orderID := conv.Request().StringParam("order_id")
	if orderID == "" {
		reply := "Zaroor, main aapka order status check kar sakta hoon. Please apna Order ID batayein."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	order, err := f.catalog.Cart(ctx, orderID)
	if err != nil {
		var reply string
		if errors.Is(err, catalog.ErrNotFound) {
			reply = fmt.Sprintf("Maaf kijiye, mujhe Order ID #%s se mutalliq koi maloomat nahi mili.", orderID)
		} else {
			logx.Error().Err(err).Str("order_id", orderID).Msg("OrderStatus: catalog lookup failed")
			reply = fmt.Sprintf("Maaf kijiye, Order ID #%s ghalat hai ya system mein koi kharabi hai.", orderID)
		}
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	text, err := f.generator.Generate(ctx, prompt.OrderStatus(orderID, order.TotalProducts, order.Total))
	if err != nil {
		logx.Error().Err(err).Str("order_id", orderID).Msg("OrderStatus: text generation failed")
		reply := fmt.Sprintf("Maaf kijiye, Order ID #%s ghalat hai ya system mein koi kharabi hai.", orderID)
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	conv.AddText(text)
	conv.SaveLastResponse(ctx, text)
}

// GetProductReviews summarizes the reviews of the best catalog match.
func (f *Fulfillment) GetProductReviews(ctx context.Context, conv *Conversation) {
	productName := conv.Request().StringParam("product_name")
	if productName == "" {
		reply := "Please tell me which product's reviews you want to see."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	apology := "Maaf kijiye, main is waqt is product ke reviews hasil nahi kar pa raha."

	products, err := f.catalog.SearchProducts(ctx, productName)
	if err != nil {
		logx.Error().Err(err).Str("product", productName).Msg("GetProductReviews: catalog lookup failed")
		conv.AddText(apology)
		conv.SaveLastResponse(ctx, apology)
		return
	}
	if len(products) == 0 {
		reply := fmt.Sprintf("I'm sorry, I couldn't find a product named '%s'.", productName)
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	text, err := f.generator.Generate(ctx, prompt.ReviewSummary(products[0]))
	if err != nil {
		logx.Error().Err(err).Str("product", productName).Msg("GetProductReviews: text generation failed")
		conv.AddText(apology)
		conv.SaveLastResponse(ctx, apology)
		return
	}

	conv.AddText(text)
	conv.SaveLastResponse(ctx, text)
}

// GetProductDescription writes fresh descriptive copy for the best catalog
// match.
func (f *Fulfillment) GetProductDescription(ctx context.Context, conv *Conversation) {
	productName := conv.Request().StringParam("product_name")
	if productName == "" {
		reply := "Please tell me which product's description you want."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	apology := "Maaf kijiye, main is waqt description generate nahi kar pa raha."

	products, err := f.catalog.SearchProducts(ctx, productName)
	if err != nil {
		logx.Error().Err(err).Str("product", productName).Msg("GetProductDescription: catalog lookup failed")
		conv.AddText(apology)
		conv.SaveLastResponse(ctx, apology)
		return
	}
	if len(products) == 0 {
		reply := fmt.Sprintf("I'm sorry, I couldn't find a product named '%s'.", productName)
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	text, err := f.generator.Generate(ctx, prompt.ProductDescription(products[0]))
	if err != nil {
		logx.Error().Err(err).Str("product", productName).Msg("GetProductDescription: text generation failed")
		conv.AddText(apology)
		conv.SaveLastResponse(ctx, apology)
		return
	}

	conv.AddText(text)
	conv.SaveLastResponse(ctx, text)
}

// TranslateLastResult translates the stored previous answer. It never
// rewrites the recallable state: the source text stays translatable again.
func (f *Fulfillment) TranslateLastResult(ctx context.Context, conv *Conversation) {
	language := conv.Request().StringParam("language")
	if language == "" {
		language = defaultTranslationLanguage
	}

	lastResponse, ok := conv.LastResponse(ctx)
	if !ok {
		conv.AddText("I'm sorry, I don't remember what to translate. Please ask something first.")
		return
	}

	text, err := f.generator.Generate(ctx, prompt.Translate(lastResponse, language))
	if err != nil {
		logx.Error().Err(err).Str("language", language).Msg("TranslateLastResult: text generation failed")
		conv.AddText("I'm sorry, I couldn't translate that right now.")
		return
	}

	conv.AddText(text)
}

// GeneralKnowledge answers free-form store questions from the raw query,
// grounded with the fixed knowledge base.
func (f *Fulfillment) GeneralKnowledge(ctx context.Context, conv *Conversation) {
	text, err := f.generator.Generate(ctx, prompt.GeneralKnowledge(conv.Request().Query))
	if err != nil {
		logx.Error().Err(err).Msg("GeneralKnowledge: text generation failed")
		reply := "I'm sorry, I'm having trouble thinking right now."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	conv.AddText(text)
	conv.SaveLastResponse(ctx, text)
}

// ListAllProducts summarizes the catalog size with a few example titles.
func (f *Fulfillment) ListAllProducts(ctx context.Context, conv *Conversation) {
	list, err := f.catalog.ListProducts(ctx, inventoryPageSize)
	if err != nil {
		logx.Error().Err(err).Msg("ListAllProducts: catalog lookup failed")
		reply := "Maaf kijiye, system mein kuch kharabi hai."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	if list == nil || len(list.Products) == 0 {
		reply := "Maaf Kijiye, is waqt hum products ki list hasil nahi kar pa rahe."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	examples := list.Products
	if len(examples) > inventoryExampleCount {
		examples = examples[:inventoryExampleCount]
	}
	titles := make([]string, 0, len(examples))
	for _, p := range examples {
		titles = append(titles, p.Title)
	}

	text, err := f.generator.Generate(ctx, prompt.InventorySummary(list.Total, titles))
	if err != nil {
		logx.Error().Err(err).Msg("ListAllProducts: text generation failed")
		reply := "Maaf kijiye, system mein kuch kharabi hai."
		conv.AddText(reply)
		conv.SaveLastResponse(ctx, reply)
		return
	}

	conv.AddText(text)
	conv.SaveLastResponse(ctx, text)
}

// formatNumber renders prices and ratings without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
