// Package ingest parses the four external input files - prices,
// market-data, trades and inquiries - into pipeline models, skipping
// malformed or unresolvable records and logging each skip rather than
// aborting the run.
package ingest

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"bond-trading-pipeline/internal/errors"
	"bond-trading-pipeline/internal/fraction"
	"bond-trading-pipeline/internal/models"
)

// Catalog is the subset of ProductCatalog ingestion needs to drop records
// for unknown products.
type Catalog interface {
	GetBond(productId string) (models.Bond, error)
}

// ReadPrices parses the whitespace-separated prices file:
// "productId midFrac spreadFrac [timestamp]". Malformed lines and unknown
// products are logged and skipped.
func ReadPrices(r io.Reader, catalog Catalog, logger zerolog.Logger) []models.Price {
	var prices []models.Price
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			logger.Error().Err(&errors.ParseError{Source: "prices", Line: line, Reason: "need at least 3 fields"}).Msg("skipping line")
			continue
		}

		productId := fields[0]
		if _, err := catalog.GetBond(productId); err != nil {
			logger.Error().Err(&errors.MissingProductError{ProductId: productId}).Msg("dropping price record")
			continue
		}

		mid, err := fraction.Parse(fields[1])
		if err != nil {
			logger.Error().Err(err).Msg("skipping line")
			continue
		}
		spread, err := fraction.Parse(fields[2])
		if err != nil {
			logger.Error().Err(err).Msg("skipping line")
			continue
		}

		prices = append(prices, models.Price{ProductId: productId, Mid: mid, Spread: spread})
	}
	return prices
}

// marketDataRow is the gocsv row shape of one market-data line: 1 product id
// plus 5 bid (price, qty) pairs and 5 offer (price, qty) pairs.
type marketDataRow struct {
	ProductId string `csv:"productId"`
	BidP1     string `csv:"bidPrice1"`
	BidQ1     string `csv:"bidQty1"`
	BidP2     string `csv:"bidPrice2"`
	BidQ2     string `csv:"bidQty2"`
	BidP3     string `csv:"bidPrice3"`
	BidQ3     string `csv:"bidQty3"`
	BidP4     string `csv:"bidPrice4"`
	BidQ4     string `csv:"bidQty4"`
	BidP5     string `csv:"bidPrice5"`
	BidQ5     string `csv:"bidQty5"`
	OfferP1   string `csv:"offerPrice1"`
	OfferQ1   string `csv:"offerQty1"`
	OfferP2   string `csv:"offerPrice2"`
	OfferQ2   string `csv:"offerQty2"`
	OfferP3   string `csv:"offerPrice3"`
	OfferQ3   string `csv:"offerQty3"`
	OfferP4   string `csv:"offerPrice4"`
	OfferQ4   string `csv:"offerQty4"`
	OfferP5   string `csv:"offerPrice5"`
	OfferQ5   string `csv:"offerQty5"`
}

func marketDataHeader() string {
	return "productId,bidPrice1,bidQty1,bidPrice2,bidQty2,bidPrice3,bidQty3,bidPrice4,bidQty4,bidPrice5,bidQty5," +
		"offerPrice1,offerQty1,offerPrice2,offerQty2,offerPrice3,offerQty3,offerPrice4,offerQty4,offerPrice5,offerQty5\n"
}

// ReadMarketData parses the headerless, comma-separated market-data file
// into OrderBook records via gocsv, prefixing the fixed header gocsv needs.
func ReadMarketData(r io.Reader, catalog Catalog, logger zerolog.Logger) []models.OrderBook {
	body, err := io.ReadAll(r)
	if err != nil {
		logger.Error().Err(&errors.IOFailureError{Path: "market-data", Err: err}).Msg("reading market data")
		return nil
	}

	var rows []marketDataRow
	if err := gocsv.UnmarshalBytes(append([]byte(marketDataHeader()), body...), &rows); err != nil {
		logger.Error().Err(&errors.ParseError{Source: "market-data", Line: "<file>", Reason: err.Error()}).Msg("skipping file")
		return nil
	}

	var books []models.OrderBook
	for _, row := range rows {
		if _, err := catalog.GetBond(row.ProductId); err != nil {
			logger.Error().Err(&errors.MissingProductError{ProductId: row.ProductId}).Msg("dropping market data record")
			continue
		}

		bids, ok := depthOrders(logger, "market-data", models.Bid,
			[2]string{row.BidP1, row.BidQ1}, [2]string{row.BidP2, row.BidQ2}, [2]string{row.BidP3, row.BidQ3},
			[2]string{row.BidP4, row.BidQ4}, [2]string{row.BidP5, row.BidQ5})
		if !ok {
			continue
		}
		offers, ok := depthOrders(logger, "market-data", models.Offer,
			[2]string{row.OfferP1, row.OfferQ1}, [2]string{row.OfferP2, row.OfferQ2}, [2]string{row.OfferP3, row.OfferQ3},
			[2]string{row.OfferP4, row.OfferQ4}, [2]string{row.OfferP5, row.OfferQ5})
		if !ok {
			continue
		}

		books = append(books, models.OrderBook{ProductId: row.ProductId, BidStack: bids, OfferStack: offers})
	}
	return books
}

func depthOrders(logger zerolog.Logger, source string, side models.Side, pairs ...[2]string) ([]models.DepthOrder, bool) {
	orders := make([]models.DepthOrder, 0, len(pairs))
	for _, pair := range pairs {
		priceStr, qtyStr := strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])
		if priceStr == "" && qtyStr == "" {
			continue
		}
		price, err := fraction.Parse(priceStr)
		if err != nil {
			logger.Error().Err(err).Msg("skipping line")
			return nil, false
		}
		qty, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil {
			logger.Error().Err(&errors.ParseError{Source: source, Line: qtyStr, Reason: "bad quantity"}).Msg("skipping line")
			return nil, false
		}
		orders = append(orders, models.DepthOrder{Price: price, Quantity: qty, Side: side})
	}
	return orders, true
}

// tradeRow is the gocsv row shape of one trades-file line.
type tradeRow struct {
	ProductId string  `csv:"productId"`
	TradeId   string  `csv:"tradeId"`
	Price     float64 `csv:"price"`
	Book      string  `csv:"book"`
	Quantity  float64 `csv:"quantity"`
	Side      string  `csv:"side"`
}

// ReadTrades parses the headerless, comma-separated trades file via gocsv.
func ReadTrades(r io.Reader, catalog Catalog, logger zerolog.Logger) []models.Trade {
	body, err := io.ReadAll(r)
	if err != nil {
		logger.Error().Err(&errors.IOFailureError{Path: "trades", Err: err}).Msg("reading trades")
		return nil
	}

	var rows []tradeRow
	header := "productId,tradeId,price,book,quantity,side\n"
	if err := gocsv.UnmarshalBytes(append([]byte(header), body...), &rows); err != nil {
		logger.Error().Err(&errors.ParseError{Source: "trades", Line: "<file>", Reason: err.Error()}).Msg("skipping file")
		return nil
	}

	var trades []models.Trade
	for _, row := range rows {
		if _, err := catalog.GetBond(row.ProductId); err != nil {
			logger.Error().Err(&errors.MissingProductError{ProductId: row.ProductId}).Msg("dropping trade record")
			continue
		}

		side := strings.ToUpper(strings.TrimSpace(row.Side))
		if side != string(models.Buy) && side != string(models.Sell) {
			logger.Error().Err(&errors.ParseError{Source: "trades", Line: row.Side, Reason: "unknown side"}).Msg("skipping line")
			continue
		}

		trades = append(trades, models.Trade{
			TradeId:   row.TradeId,
			ProductId: row.ProductId,
			Price:     row.Price,
			Book:      row.Book,
			Quantity:  row.Quantity,
			Side:      models.TradeSide(side),
		})
	}
	return trades
}

// ReadInquiries parses the whitespace-separated inquiries file:
// "inquiryId productId side quantity". Price defaults to 0.0 and state to
// RECEIVED.
func ReadInquiries(r io.Reader, catalog Catalog, logger zerolog.Logger) []models.Inquiry {
	var inquiries []models.Inquiry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			logger.Error().Err(&errors.ParseError{Source: "inquiries", Line: line, Reason: "need at least 4 fields"}).Msg("skipping line")
			continue
		}

		inquiryId, productId, sideRaw, qtyRaw := fields[0], fields[1], fields[2], fields[3]
		if _, err := catalog.GetBond(productId); err != nil {
			logger.Error().Err(&errors.MissingProductError{ProductId: productId}).Msg("dropping inquiry")
			continue
		}

		side := strings.ToUpper(sideRaw)
		if side != string(models.Buy) && side != string(models.Sell) {
			logger.Error().Err(&errors.ParseError{Source: "inquiries", Line: line, Reason: "unknown side"}).Msg("skipping line")
			continue
		}

		qty, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			logger.Error().Err(&errors.ParseError{Source: "inquiries", Line: line, Reason: "bad quantity"}).Msg("skipping line")
			continue
		}

		inquiries = append(inquiries, models.Inquiry{
			InquiryId: inquiryId,
			ProductId: productId,
			Side:      models.TradeSide(side),
			Quantity:  qty,
			Price:     0.0,
			State:     models.Received,
		})
	}
	return inquiries
}
