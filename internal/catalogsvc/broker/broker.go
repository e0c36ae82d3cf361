package broker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/pokecard-services/internal/apperr"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/service"
	"github.com/avvvet/pokecard-services/internal/comm"
)

const QueueGroup = "catalogsvc"

type Broker struct {
	Conn        *nats.Conn
	SetService  *service.SetService
	CardService *service.CardService
	Timeout     time.Duration
}

func NewBroker(nc *nats.Conn, setService *service.SetService, cardService *service.CardService, timeout time.Duration) *Broker {
	return &Broker{
		Conn:        nc,
		SetService:  setService,
		CardService: cardService,
		Timeout:     timeout,
	}
}

// consume lookup requests (Queue)
func (b *Broker) QueueSubscribe(subject string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(subject, QueueGroup, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handles a request coming from a chat front end
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	var reply comm.Reply

	req := comm.Request{}
	if err := json.Unmarshal(msgNat.Data, &req); err != nil {
		log.Errorf("Error nats message %s", err)
		reply = errorReply("", apperr.Invalid("malformed request", ""))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
		reply = b.handleRequest(ctx, req)
		cancel()
	}

	if msgNat.Reply == "" {
		log.Warnf("lookup %q arrived without a reply subject, dropping", req.Type)
		return
	}

	payload, err := json.Marshal(reply)
	if err != nil {
		log.Errorf("Error marshal reply %s: %s", reply.Type, err)
		return
	}
	if err := msgNat.Respond(payload); err != nil {
		log.Errorf("Error responding to %s: %s", msgNat.Reply, err)
	}
}

func (b *Broker) handleRequest(ctx context.Context, req comm.Request) comm.Reply {
	var (
		data  interface{}
		setID string
		err   error
	)

	switch req.Type {
	case comm.TypeGetSets:
		var q comm.SetQuery
		if err = decode(req.Data, &q); err == nil {
			data, err = b.SetService.ListSets(ctx, q.Series)
		}
	case comm.TypeGetSet:
		var q comm.SetQuery
		if err = decode(req.Data, &q); err == nil {
			set, e := b.SetService.GetSet(ctx, q.Set)
			if e == nil {
				data, setID = set, set.ID
			}
			err = e
		}
	case comm.TypeGetPullRates:
		var q comm.SetQuery
		if err = decode(req.Data, &q); err == nil {
			setID, data, err = b.SetService.PullRates(ctx, q.Set)
		}
	case comm.TypeGetChaseCards:
		var q comm.ChaseQuery
		if err = decode(req.Data, &q); err == nil {
			res, e := b.CardService.ChaseCards(ctx, q.Set, q.Rarity, q.Limit.String())
			if e == nil {
				data, setID = res.Cards, res.SetID
			}
			err = e
		}
	case comm.TypeGetGradedPrices:
		var q comm.CardQuery
		if err = decode(req.Data, &q); err == nil {
			data, err = b.CardService.GradedPrices(ctx, q.CardID)
		}
	case comm.TypeGetPrice:
		var q comm.CardQuery
		if err = decode(req.Data, &q); err == nil {
			res, e := b.CardService.Price(ctx, q.CardID)
			if e == nil {
				data, setID = res, res.SetID
			}
			err = e
		}
	case comm.TypeSearchCards:
		var q comm.SearchQuery
		if err = decode(req.Data, &q); err == nil {
			res, e := b.CardService.Search(ctx, service.SearchQuery{
				Query:  q.Query,
				Set:    q.Set,
				Rarity: q.Rarity,
				Limit:  q.Limit.String(),
			})
			if e == nil {
				data, setID = res, res.SetID
			}
			err = e
		}
	default:
		err = apperr.Invalid("unknown message type", req.Type)
	}

	if err != nil {
		return errorReply(req.Type, err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return errorReply(req.Type, err)
	}
	return comm.Reply{Type: req.Type + "-response", Data: raw, SetID: setID}
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperr.Invalid("malformed request data", "")
	}
	return nil
}

func errorReply(reqType string, err error) comm.Reply {
	kind := apperr.KindOf(err)
	body := &comm.ErrorBody{Code: kind.String()}

	var e *apperr.Error
	switch {
	case (kind == apperr.KindNotFound || kind == apperr.KindInvalidParameter) && errors.As(err, &e):
		body.Message, body.Identifier = e.Message, e.Identifier
	case kind == apperr.KindUnavailable:
		log.Errorf("Error [%s] %s", reqType, err)
		body.Message = "storage unavailable"
	default:
		log.Errorf("Error [%s] %s", reqType, err)
		body.Message = "internal error"
	}

	return comm.Reply{Type: reqType + "-response", Error: body}
}
