// Copyright 2022-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"context"
	"fmt"
	"io/ioutil"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pv-correlate/common"
	"github.com/penny-vault/pv-correlate/dataframe"
	"github.com/penny-vault/pv-correlate/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var yahooAPI = "https://query1.finance.yahoo.com"

type yahoo struct{}

// NewYahoo creates a Yahoo Finance chart-API data provider
func NewYahoo() Provider {
	return &yahoo{}
}

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote    []yahooQuote    `json:"quote"`
		AdjClose []yahooAdjClose `json:"adjclose"`
	} `json:"indicators"`
}

// price arrays use pointers because yahoo emits null for missing sessions
type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yahooAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

func (y *yahoo) Name() string {
	return "yahoo"
}

// GetCloses downloads daily closing prices for the ticker. Responses are
// cached against the request URL so a re-run within the cache TTL does not
// hit the provider again.
func (y *yahoo) GetCloses(ctx context.Context, ticker string, dataRange string, interval string) (*dataframe.DataFrame, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.GetCloses")
	defer span.End()

	subLog := log.With().Str("Ticker", ticker).Str("Range", dataRange).Str("Interval", interval).Logger()

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s", yahooAPI, url.PathEscape(ticker), dataRange, interval)
	span.SetAttributes(
		attribute.KeyValue{
			Key:   "Ticker",
			Value: attribute.StringValue(ticker),
		},
		attribute.KeyValue{
			Key:   "Range",
			Value: attribute.StringValue(dataRange),
		},
	)

	body, cached := common.CacheGet(common.CacheKey(reqURL))
	subLog.Debug().Bool("Cached", cached).Msg("load closing prices from yahoo")

	if !cached {
		resp, err := http.Get(reqURL)
		if err != nil {
			span.RecordError(err)
			msg := "yahoo http request failed"
			span.SetStatus(codes.Error, msg)
			subLog.Warn().Err(err).Msg(msg)
			return nil, err
		}
		defer resp.Body.Close()

		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			span.RecordError(err)
			msg := "could not read yahoo body"
			span.SetStatus(codes.Error, msg)
			subLog.Warn().Err(err).Msg(msg)
			return nil, err
		}

		if resp.StatusCode >= 400 {
			msg := "yahoo returned invalid response code"
			span.SetStatus(codes.Error, msg)
			subLog.Warn().Int("HTTPResponseStatusCode", resp.StatusCode).Msg(msg)
			return nil, fmt.Errorf("%w: status code %d", ErrProviderResponse, resp.StatusCode)
		}

		if err := common.CacheSet(common.CacheKey(reqURL), body); err != nil {
			subLog.Warn().Err(err).Msg("could not cache yahoo response")
		}
	}

	chart := yahooChartResponse{}
	if err := json.Unmarshal(body, &chart); err != nil {
		span.RecordError(err)
		msg := "could not unmarshal json"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Err(err).Msg(msg)
		return nil, err
	}

	if chart.Chart.Error != nil {
		msg := "yahoo chart api returned error"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Str("Code", chart.Chart.Error.Code).Str("Description", chart.Chart.Error.Description).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrProviderResponse, chart.Chart.Error.Code)
	}

	if len(chart.Chart.Result) == 0 {
		span.SetStatus(codes.Error, "no results returned")
		subLog.Warn().Msg("no results returned")
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	closes := closesFromResult(result)
	if len(result.Timestamp) == 0 || closes == nil {
		span.SetStatus(codes.Error, "result contains no quotes")
		subLog.Warn().Msg("result contains no quotes")
		return nil, ErrNoData
	}

	tz := common.GetTimezone()
	dates := make([]time.Time, 0, len(result.Timestamp))
	vals := make([]float64, 0, len(result.Timestamp))
	for idx, ts := range result.Timestamp {
		dt := time.Unix(ts, 0).In(tz)
		// normalize intraday stamps to the 4pm session close
		dates = append(dates, time.Date(dt.Year(), dt.Month(), dt.Day(), 16, 0, 0, 0, tz))
		if idx < len(closes) && closes[idx] != nil {
			vals = append(vals, *closes[idx])
		} else {
			vals = append(vals, math.NaN())
		}
	}

	df := dataframe.New(dates)
	df.Insert(ticker, vals)
	return df, nil
}

// closesFromResult prefers the raw close series and falls back to the
// adjusted close when the quote block is absent
func closesFromResult(result yahooChartResult) []*float64 {
	if len(result.Indicators.Quote) > 0 && len(result.Indicators.Quote[0].Close) > 0 {
		return result.Indicators.Quote[0].Close
	}
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		return result.Indicators.AdjClose[0].AdjClose
	}
	return nil
}
