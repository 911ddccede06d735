package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

// KeyValueStore is the persistence collaborator. Get reports found=false
// for keys that were never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	RemoveMany(ctx context.Context, keys []string) error
}

type IDGenerator interface {
	NextID() string
}

type CollectionKeys struct {
	Caffeine string
	Sleep    string
	Nap      string
}

var DefaultCollectionKeys = CollectionKeys{
	Caffeine: "caffeine_tracker_caffeine_data",
	Sleep:    "caffeine_tracker_sleep_data",
	Nap:      "caffeine_tracker_nap_data",
}

func (keys CollectionKeys) All() []string {
	return []string{keys.Caffeine, keys.Sleep, keys.Nap}
}

type entryRecord interface {
	models.CaffeineEntry | models.SleepEntry | models.NapEntry
	models.Entry
}

type collectionCodec[T entryRecord] struct {
	key    string
	decode func(raw string, location *time.Location) ([]T, error)
	encode func(entries []T) (string, error)
}

// EntryRepository owns the three entry collections. Every mutation is a
// full read-modify-write of one collection, serialized by mu.
type EntryRepository struct {
	store    KeyValueStore
	ids      IDGenerator
	keys     CollectionKeys
	location *time.Location
	mu       sync.Mutex
}

func NewEntryRepository(store KeyValueStore, ids IDGenerator, location *time.Location) *EntryRepository {
	if location == nil {
		location = time.UTC
	}
	return &EntryRepository{
		store:    store,
		ids:      ids,
		keys:     DefaultCollectionKeys,
		location: location,
	}
}

func (repository *EntryRepository) Location() *time.Location {
	return repository.location
}

func (repository *EntryRepository) Keys() CollectionKeys {
	return repository.keys
}

func (repository *EntryRepository) caffeineCodec() collectionCodec[models.CaffeineEntry] {
	return collectionCodec[models.CaffeineEntry]{key: repository.keys.Caffeine, decode: decodeCaffeineEntries, encode: encodeCaffeineEntries}
}

func (repository *EntryRepository) sleepCodec() collectionCodec[models.SleepEntry] {
	return collectionCodec[models.SleepEntry]{key: repository.keys.Sleep, decode: decodeSleepEntries, encode: encodeSleepEntries}
}

func (repository *EntryRepository) napCodec() collectionCodec[models.NapEntry] {
	return collectionCodec[models.NapEntry]{key: repository.keys.Nap, decode: decodeNapEntries, encode: encodeNapEntries}
}

func (repository *EntryRepository) Save(ctx context.Context, kind models.EntryType, draft EntryDraft) (models.Entry, error) {
	switch kind {
	case models.EntryTypeCaffeine:
		return asEntry[models.CaffeineEntry](repository.SaveCaffeine(ctx, draft.Amount, draft.Timestamp))
	case models.EntryTypeSleep:
		return asEntry[models.SleepEntry](repository.SaveSleep(ctx, draft.StartTime, draft.EndTime, draft.Rating))
	case models.EntryTypeNap:
		return asEntry[models.NapEntry](repository.SaveNap(ctx, draft.StartTime, draft.EndTime, draft.Rating))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, kind)
	}
}

func (repository *EntryRepository) SaveCaffeine(ctx context.Context, amount int, timestamp time.Time) (models.CaffeineEntry, error) {
	if err := ValidateCaffeine(amount, timestamp); err != nil {
		return models.CaffeineEntry{}, err
	}
	timestamp = normalizeInstant(timestamp, repository.location)
	entry := models.CaffeineEntry{
		ID:        repository.ids.NextID(),
		Amount:    amount,
		Timestamp: timestamp,
		Date:      DateKey(timestamp, repository.location),
	}
	return appendEntry(ctx, repository, repository.caffeineCodec(), entry)
}

func (repository *EntryRepository) SaveSleep(ctx context.Context, start time.Time, end time.Time, rating int) (models.SleepEntry, error) {
	interval, rating, err := repository.prepareInterval(models.EntryTypeSleep, start, end, rating)
	if err != nil {
		return models.SleepEntry{}, err
	}
	entry := models.SleepEntry{
		ID:       repository.ids.NextID(),
		Interval: interval,
		IsNap:    false,
		Rating:   rating,
		Date:     DateKey(interval.StartTime, repository.location),
	}
	return appendEntry(ctx, repository, repository.sleepCodec(), entry)
}

func (repository *EntryRepository) SaveNap(ctx context.Context, start time.Time, end time.Time, rating int) (models.NapEntry, error) {
	interval, rating, err := repository.prepareInterval(models.EntryTypeNap, start, end, rating)
	if err != nil {
		return models.NapEntry{}, err
	}
	entry := models.NapEntry{
		ID:       repository.ids.NextID(),
		Interval: interval,
		IsNap:    true,
		Rating:   rating,
		Date:     DateKey(interval.StartTime, repository.location),
	}
	return appendEntry(ctx, repository, repository.napCodec(), entry)
}

func (repository *EntryRepository) prepareInterval(kind models.EntryType, start time.Time, end time.Time, rating int) (models.Interval, int, error) {
	if err := ValidateInterval(start, end); err != nil {
		return models.Interval{}, 0, err
	}
	normalizedRating, err := NormalizeRating(kind, rating)
	if err != nil {
		return models.Interval{}, 0, err
	}
	return models.Interval{
		StartTime: normalizeInstant(start, repository.location),
		EndTime:   normalizeInstant(end, repository.location),
	}, normalizedRating, nil
}

// GetAll returns an empty list when the collection was never written.
func (repository *EntryRepository) GetAll(ctx context.Context, kind models.EntryType) ([]models.Entry, error) {
	switch kind {
	case models.EntryTypeCaffeine:
		return listEntries(ctx, repository, repository.caffeineCodec())
	case models.EntryTypeSleep:
		return listEntries(ctx, repository, repository.sleepCodec())
	case models.EntryTypeNap:
		return listEntries(ctx, repository, repository.napCodec())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, kind)
	}
}

func (repository *EntryRepository) ListCaffeine(ctx context.Context) ([]models.CaffeineEntry, error) {
	entries, _, err := loadCollection(ctx, repository, repository.caffeineCodec())
	return entries, err
}

func (repository *EntryRepository) ListSleep(ctx context.Context) ([]models.SleepEntry, error) {
	entries, _, err := loadCollection(ctx, repository, repository.sleepCodec())
	return entries, err
}

func (repository *EntryRepository) ListNaps(ctx context.Context) ([]models.NapEntry, error) {
	entries, _, err := loadCollection(ctx, repository, repository.napCodec())
	return entries, err
}

func (repository *EntryRepository) LoadAll(ctx context.Context) (models.EntryCollections, error) {
	caffeine, err := repository.ListCaffeine(ctx)
	if err != nil {
		return models.EntryCollections{}, err
	}
	sleep, err := repository.ListSleep(ctx)
	if err != nil {
		return models.EntryCollections{}, err
	}
	naps, err := repository.ListNaps(ctx)
	if err != nil {
		return models.EntryCollections{}, err
	}
	return models.EntryCollections{Caffeine: caffeine, Sleep: sleep, Naps: naps}, nil
}

func (repository *EntryRepository) GetByID(ctx context.Context, kind models.EntryType, id string) (models.Entry, error) {
	switch kind {
	case models.EntryTypeCaffeine:
		return asEntry[models.CaffeineEntry](findEntry(ctx, repository, repository.caffeineCodec(), id))
	case models.EntryTypeSleep:
		return asEntry[models.SleepEntry](findEntry(ctx, repository, repository.sleepCodec(), id))
	case models.EntryTypeNap:
		return asEntry[models.NapEntry](findEntry(ctx, repository, repository.napCodec(), id))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, kind)
	}
}

// Update merges patch into the stored entry and recomputes its date from
// the possibly changed primary instant. Fields foreign to kind are rejected.
func (repository *EntryRepository) Update(ctx context.Context, kind models.EntryType, id string, patch EntryPatch) (models.Entry, error) {
	if err := patch.CheckApplies(kind); err != nil {
		return nil, err
	}

	switch kind {
	case models.EntryTypeCaffeine:
		return asEntry[models.CaffeineEntry](updateEntry(ctx, repository, repository.caffeineCodec(), id, func(entry models.CaffeineEntry) (models.CaffeineEntry, error) {
			return repository.patchCaffeine(entry, patch)
		}))
	case models.EntryTypeSleep:
		return asEntry[models.SleepEntry](updateEntry(ctx, repository, repository.sleepCodec(), id, func(entry models.SleepEntry) (models.SleepEntry, error) {
			return repository.patchInterval(kind, entry, patch)
		}))
	case models.EntryTypeNap:
		return asEntry[models.NapEntry](updateEntry(ctx, repository, repository.napCodec(), id, func(entry models.NapEntry) (models.NapEntry, error) {
			patched, err := repository.patchInterval(kind, models.SleepEntry(entry), patch)
			return models.NapEntry(patched), err
		}))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, kind)
	}
}

func (repository *EntryRepository) patchCaffeine(entry models.CaffeineEntry, patch EntryPatch) (models.CaffeineEntry, error) {
	if patch.Amount != nil {
		entry.Amount = *patch.Amount
	}
	if patch.Timestamp != nil {
		entry.Timestamp = normalizeInstant(*patch.Timestamp, repository.location)
	}
	if err := ValidateCaffeine(entry.Amount, entry.Timestamp); err != nil {
		return models.CaffeineEntry{}, err
	}
	entry.Date = DateKey(entry.Timestamp, repository.location)
	return entry, nil
}

func (repository *EntryRepository) patchInterval(kind models.EntryType, entry models.SleepEntry, patch EntryPatch) (models.SleepEntry, error) {
	if patch.StartTime != nil {
		entry.StartTime = normalizeInstant(*patch.StartTime, repository.location)
	}
	if patch.EndTime != nil {
		entry.EndTime = normalizeInstant(*patch.EndTime, repository.location)
	}
	if patch.Rating != nil {
		entry.Rating = *patch.Rating
	}
	if err := ValidateInterval(entry.StartTime, entry.EndTime); err != nil {
		return models.SleepEntry{}, err
	}
	rating, err := NormalizeRating(kind, entry.Rating)
	if err != nil {
		return models.SleepEntry{}, err
	}
	entry.Rating = rating
	entry.Date = DateKey(entry.StartTime, repository.location)
	return entry, nil
}

// DeleteByID reports false only when the collection was never written.
// Deleting an unknown id from an existing collection succeeds.
func (repository *EntryRepository) DeleteByID(ctx context.Context, kind models.EntryType, id string) (bool, error) {
	switch kind {
	case models.EntryTypeCaffeine:
		return deleteEntry(ctx, repository, repository.caffeineCodec(), id)
	case models.EntryTypeSleep:
		return deleteEntry(ctx, repository, repository.sleepCodec(), id)
	case models.EntryTypeNap:
		return deleteEntry(ctx, repository, repository.napCodec(), id)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownEntryType, kind)
	}
}

// GetForDate returns the entries whose derived date equals the local
// calendar date of day.
func (repository *EntryRepository) GetForDate(ctx context.Context, day time.Time) (models.EntryCollections, error) {
	all, err := repository.LoadAll(ctx)
	if err != nil {
		return models.EntryCollections{}, err
	}
	return FilterByDateKey(all, DateKey(day, repository.location)), nil
}

func (repository *EntryRepository) ClearAll(ctx context.Context) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if err := repository.store.RemoveMany(ctx, repository.keys.All()); err != nil {
		return fmt.Errorf("%w: remove collections: %w", ErrStorage, err)
	}
	return nil
}

func FilterByDateKey(all models.EntryCollections, key string) models.EntryCollections {
	return models.EntryCollections{
		Caffeine: filterByDate(all.Caffeine, key),
		Sleep:    filterByDate(all.Sleep, key),
		Naps:     filterByDate(all.Naps, key),
	}
}

func filterByDate[T entryRecord](entries []T, key string) []T {
	filtered := make([]T, 0)
	for _, entry := range entries {
		if entry.DateKey() == key {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func loadCollection[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T]) ([]T, bool, error) {
	raw, found, err := repository.store.Get(ctx, codec.key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %w", ErrStorage, codec.key, err)
	}
	if !found {
		return []T{}, false, nil
	}
	entries, err := codec.decode(raw, repository.location)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %s: %w", ErrStorage, codec.key, err)
	}
	return entries, true, nil
}

func storeCollection[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T], entries []T) error {
	encoded, err := codec.encode(entries)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorage, codec.key, err)
	}
	if err := repository.store.Set(ctx, codec.key, encoded); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorage, codec.key, err)
	}
	return nil
}

func appendEntry[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T], entry T) (T, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var zero T
	entries, _, err := loadCollection(ctx, repository, codec)
	if err != nil {
		return zero, err
	}
	entries = append(entries, entry)
	if err := storeCollection(ctx, repository, codec, entries); err != nil {
		return zero, err
	}
	return entry, nil
}

func listEntries[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T]) ([]models.Entry, error) {
	entries, _, err := loadCollection(ctx, repository, codec)
	if err != nil {
		return nil, err
	}
	result := make([]models.Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry)
	}
	return result, nil
}

func findEntry[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T], id string) (T, error) {
	var zero T
	entries, found, err := loadCollection(ctx, repository, codec)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %s", ErrNoData, codec.key)
	}
	index := indexOfEntry(entries, id)
	if index < 0 {
		return zero, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return entries[index], nil
}

func updateEntry[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T], id string, apply func(T) (T, error)) (T, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var zero T
	entries, found, err := loadCollection(ctx, repository, codec)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%w: %s", ErrNoData, codec.key)
	}
	index := indexOfEntry(entries, id)
	if index < 0 {
		return zero, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	updated, err := apply(entries[index])
	if err != nil {
		return zero, err
	}
	entries[index] = updated
	if err := storeCollection(ctx, repository, codec, entries); err != nil {
		return zero, err
	}
	return updated, nil
}

func deleteEntry[T entryRecord](ctx context.Context, repository *EntryRepository, codec collectionCodec[T], id string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entries, found, err := loadCollection(ctx, repository, codec)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	kept := make([]T, 0, len(entries))
	for _, entry := range entries {
		if entry.EntryID() != id {
			kept = append(kept, entry)
		}
	}
	if err := storeCollection(ctx, repository, codec, kept); err != nil {
		return false, err
	}
	return true, nil
}

func indexOfEntry[T entryRecord](entries []T, id string) int {
	for index, entry := range entries {
		if entry.EntryID() == id {
			return index
		}
	}
	return -1
}

func asEntry[T entryRecord](entry T, err error) (models.Entry, error) {
	if err != nil {
		return nil, err
	}
	return entry, nil
}
